// Package linemod reads the LINEMOD per-object dataset layout: the PLY mesh,
// per-frame rotation/translation files, packed depth frames and colour frames.
package linemod

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrFormat marks malformed or truncated dataset files.
var ErrFormat = errors.New("format error")

// Mesh holds the object geometry in millimetres.
type Mesh struct {
	Vertices [][3]float32
	Indices  [][3]uint32 // nil unless faces were requested
}

// Depth is a row-major grid of distances in millimetres.
type Depth struct {
	Rows int
	Cols int
	Data []uint16
}

// At returns the sample at row r, column c.
func (d *Depth) At(r, c int) uint16 {
	return d.Data[r*d.Cols+c]
}

// File names inside an object directory.
const (
	MeshFile      = "mesh.ply"
	TransformFile = "transform.dat"
	DataDir       = "data"
)

// MeshPath returns <obj>/mesh.ply.
func MeshPath(objDir string) string {
	return filepath.Join(objDir, MeshFile)
}

// RotPath returns <obj>/data/rot<i>.rot.
func RotPath(objDir string, i int) string {
	return filepath.Join(objDir, DataDir, fmt.Sprintf("rot%d.rot", i))
}

// TraPath returns <obj>/data/tra<i>.tra.
func TraPath(objDir string, i int) string {
	return filepath.Join(objDir, DataDir, fmt.Sprintf("tra%d.tra", i))
}

// DepthPath returns <obj>/data/depth<i>.dpt.
func DepthPath(objDir string, i int) string {
	return filepath.Join(objDir, DataDir, fmt.Sprintf("depth%d.dpt", i))
}

// ColorPath returns <obj>/data/color<i>.<ext>.
func ColorPath(objDir string, i int, ext string) string {
	return filepath.Join(objDir, DataDir, fmt.Sprintf("color%d.%s", i, ext))
}

// CountFrames counts the colour frames data/color*.<ext> of an object.
func CountFrames(objDir, ext string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(objDir, DataDir, "color*."+ext))
	if err != nil {
		return 0, fmt.Errorf("linemod: glob frames in %s: %w", objDir, err)
	}
	return len(matches), nil
}

func formatErr(path, format string, args ...any) error {
	return fmt.Errorf("linemod: parse %s: %s: %w", path, fmt.Sprintf(format, args...), ErrFormat)
}
