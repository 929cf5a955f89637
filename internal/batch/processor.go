package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"linemod-brachmann/internal/brachmann"
	"linemod-brachmann/internal/convert"
	"linemod-brachmann/internal/linemod"
	"linemod-brachmann/internal/mathutil"
	"linemod-brachmann/internal/raster"
)

// Config holds all shared resources for a conversion run.
type Config struct {
	DataDir     string
	ColorExt    string // source colour frame extension, e.g. "jpg"
	ColorFormat string // brachmann.FormatPNG or brachmann.FormatWebP
	Log         logrus.FieldLogger

	// Renderer produces seg/obj images when non-nil. It must already be
	// initialised; Run never creates or releases it.
	Renderer Renderer
}

// Result summarises one converted object.
type Result struct {
	Name     string
	Frames   int
	Vertices int
	Faces    int
	Bounds   linemod.Bounds
	Rendered bool
}

// ListObjects returns the object directories of dataDir in lexicographic
// order. Entries starting with "." or "_" are skipped.
func ListObjects(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("batch: list %s: %w", dataDir, err)
	}

	var objs []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			st, err := os.Stat(filepath.Join(dataDir, name))
			isDir = err == nil && st.IsDir()
		}
		if isDir {
			objs = append(objs, name)
		}
	}
	return objs, nil
}

// Run converts every object of cfg.DataDir one after the other. It stops at
// the first error; output already written stays on disk and is overwritten by
// the next run.
func Run(cfg Config) ([]Result, error) {
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}

	objs, err := ListObjects(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(objs))

	for i, name := range objs {
		start := time.Now()
		log := cfg.Log.WithField("object", name)
		log.Infof("[%d/%d] converting", i+1, len(objs))

		res, err := ProcessObject(cfg, name)
		if err != nil {
			return results, err
		}
		results = append(results, res)

		log.WithField("frames", res.Frames).Infof("done in %.1fs", time.Since(start).Seconds())
	}

	return results, nil
}

// ProcessObject converts a single object directory.
func ProcessObject(cfg Config, name string) (Result, error) {
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	objDir := filepath.Join(cfg.DataDir, name)
	render := cfg.Renderer != nil

	mesh, err := linemod.ReadMesh(linemod.MeshPath(objDir), render)
	if err != nil {
		return Result{}, fmt.Errorf("batch: %s: %w", name, err)
	}
	bounds, err := linemod.ComputeBounds(mesh)
	if err != nil {
		return Result{}, fmt.Errorf("batch: %s: %w", name, err)
	}

	n, err := linemod.CountFrames(objDir, cfg.ColorExt)
	if err != nil {
		return Result{}, fmt.Errorf("batch: %s: %w", name, err)
	}

	if err := brachmann.EnsureLayout(objDir); err != nil {
		return Result{}, fmt.Errorf("batch: %s: %w", name, err)
	}

	if render {
		mat := raster.Material{Min: bounds.Min, Extent: bounds.Extent}
		if err := cfg.Renderer.SetMesh(mesh.Vertices, mesh.Indices, mat); err != nil {
			return Result{}, fmt.Errorf("batch: %s: %w", name, err)
		}
	}

	cfg.Log.WithFields(logrus.Fields{
		"object":   name,
		"vertices": len(mesh.Vertices),
		"frames":   n,
	}).Debugf("extent %v mm, center %v mm", bounds.Extent, bounds.Center)

	for i := 0; i < n; i++ {
		if err := convertFrame(cfg, name, objDir, i, bounds); err != nil {
			return Result{}, fmt.Errorf("batch: %s frame %d: %w", name, i, err)
		}
	}

	return Result{
		Name:     name,
		Frames:   n,
		Vertices: len(mesh.Vertices),
		Faces:    len(mesh.Indices),
		Bounds:   bounds,
		Rendered: render,
	}, nil
}

func convertFrame(cfg Config, name, objDir string, i int, bounds linemod.Bounds) error {
	depth, err := linemod.ReadDepth(linemod.DepthPath(objDir, i))
	if err != nil {
		return err
	}
	if err := brachmann.WriteDepth(brachmann.DepthPath(objDir, i), depth); err != nil {
		return err
	}

	color, err := linemod.ReadColor(linemod.ColorPath(objDir, i, cfg.ColorExt))
	if err != nil {
		return err
	}
	if err := brachmann.WriteColor(brachmann.ColorPath(objDir, i, cfg.ColorFormat), color, cfg.ColorFormat); err != nil {
		return err
	}

	pose, err := linemod.ReadPose(objDir, i)
	if err != nil {
		return err
	}
	res := convert.Pose(pose.R, pose.T, bounds.Extent, bounds.Center)
	if res.Flipped {
		cfg.Log.WithFields(logrus.Fields{"object": name, "frame": i}).Debug("pose behind camera, flipped")
	}

	info := brachmann.Info{
		Name:     name,
		Rotation: res.Rotation,
		Center:   res.Translation,
		Extent:   res.Extent,
	}
	if err := brachmann.WriteInfo(brachmann.InfoPath(objDir, i), info); err != nil {
		return err
	}

	if cfg.Renderer == nil {
		return nil
	}
	return renderFrame(cfg.Renderer, objDir, i, pose, bounds)
}

func renderFrame(r Renderer, objDir string, i int, pose linemod.Pose, bounds linemod.Bounds) error {
	r.SetPose(pose.R, pose.T.Scale(mathutil.MMPerCM))
	fb, err := r.RenderFrame()
	if err != nil {
		return err
	}

	mask, coords, err := DecodeReadback(fb, bounds.Extent)
	if err != nil {
		return err
	}
	if err := brachmann.WriteMask(brachmann.SegPath(objDir, i), mask); err != nil {
		return err
	}
	return brachmann.WriteObjCoords(brachmann.ObjPath(objDir, i), coords)
}
