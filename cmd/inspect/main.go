package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"linemod-brachmann/internal/convert"
	"linemod-brachmann/internal/linemod"
)

func main() {
	dataDir := flag.String("data", ".", "LINEMOD root holding one directory per object")
	colorExt := flag.String("color-ext", "jpg", "Colour frame extension")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-data dir] <object>...")
		os.Exit(2)
	}

	failed := false
	for _, name := range flag.Args() {
		if err := inspect(filepath.Join(*dataDir, name), *colorExt); err != nil {
			fmt.Printf("Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(objDir, colorExt string) error {
	mesh, err := linemod.ReadMesh(linemod.MeshPath(objDir), true)
	if err != nil {
		return err
	}
	b, err := linemod.ComputeBounds(mesh)
	if err != nil {
		return err
	}

	fmt.Printf("%s: verts=%d, faces=%d\n", filepath.Base(objDir), len(mesh.Vertices), len(mesh.Indices))
	fmt.Printf("  BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f] mm\n",
		b.Min[0], b.Max[0], b.Min[1], b.Max[1], b.Min[2], b.Max[2])
	fmt.Printf("  Extent: %.2f x %.2f x %.2f mm, center (%.2f, %.2f, %.2f)\n",
		b.Extent[0], b.Extent[1], b.Extent[2], b.Center[0], b.Center[1], b.Center[2])

	r, t, err := linemod.ReadTransform(filepath.Join(objDir, linemod.TransformFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println("  transform.dat: none")
	case err != nil:
		return err
	default:
		fmt.Printf("  transform.dat: det=%.4f t=(%.3f, %.3f, %.3f) cm\n", r.Det(), t[0], t[1], t[2])
	}

	n, err := linemod.CountFrames(objDir, colorExt)
	if err != nil {
		return err
	}
	fmt.Printf("  Frames: %d\n", n)
	if n == 0 {
		return nil
	}

	pose, err := linemod.ReadPose(objDir, 0)
	if err != nil {
		return err
	}
	res := convert.Pose(pose.R, pose.T, b.Extent, b.Center)
	fmt.Printf("  Frame 0: t=(%.4f, %.4f, %.4f) m, flipped=%v\n",
		res.Translation[0], res.Translation[1], res.Translation[2], res.Flipped)
	for k := 0; k < 3; k++ {
		row := res.Rotation.Row(k)
		fmt.Printf("    R[%d] = %8.4f %8.4f %8.4f\n", k, row[0], row[1], row[2])
	}
	return nil
}
