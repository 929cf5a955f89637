// Package brachmann writes the per-object output layout consumed by the
// Brachmann pose-estimation pipeline.
package brachmann

import (
	"fmt"
	"os"
	"path/filepath"
)

// Output subdirectories of an object directory.
const (
	InfoDir  = "info"
	DepthDir = "depth_noseg"
	RGBDir   = "rgb_noseg"
	SegDir   = "seg"
	ObjDir   = "obj"
)

// Dirs lists every output subdirectory in creation order.
var Dirs = []string{InfoDir, DepthDir, RGBDir, SegDir, ObjDir}

// EnsureLayout creates the output subdirectories of objDir. Existing
// directories are left alone.
func EnsureLayout(objDir string) error {
	for _, d := range Dirs {
		p := filepath.Join(objDir, d)
		if err := os.MkdirAll(p, 0755); err != nil {
			return fmt.Errorf("brachmann: mkdir %s: %w", p, err)
		}
	}
	return nil
}

// InfoPath returns <obj>/info/info_<i>.txt.
func InfoPath(objDir string, i int) string {
	return filepath.Join(objDir, InfoDir, fmt.Sprintf("info_%05d.txt", i))
}

// DepthPath returns <obj>/depth_noseg/depth_<i>.png.
func DepthPath(objDir string, i int) string {
	return filepath.Join(objDir, DepthDir, fmt.Sprintf("depth_%05d.png", i))
}

// ColorPath returns <obj>/rgb_noseg/color_<i>.<ext>.
func ColorPath(objDir string, i int, ext string) string {
	return filepath.Join(objDir, RGBDir, fmt.Sprintf("color_%05d.%s", i, ext))
}

// SegPath returns <obj>/seg/seg_<i>.png.
func SegPath(objDir string, i int) string {
	return filepath.Join(objDir, SegDir, fmt.Sprintf("seg_%05d.png", i))
}

// ObjPath returns <obj>/obj/obj_<i>.png.
func ObjPath(objDir string, i int) string {
	return filepath.Join(objDir, ObjDir, fmt.Sprintf("obj_%05d.png", i))
}
