package linemod

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"linemod-brachmann/internal/mathutil"
)

// Bounds is the axis-aligned box of a mesh in object-local millimetres.
type Bounds struct {
	Min    mathutil.Vec3
	Max    mathutil.Vec3
	Center mathutil.Vec3 // (Min+Max)/2
	Extent mathutil.Vec3 // Max-Min
}

// ComputeBounds returns the per-axis min/max box of the mesh vertices.
func ComputeBounds(m *Mesh) (Bounds, error) {
	if len(m.Vertices) == 0 {
		return Bounds{}, errors.New("linemod: bounds of empty mesh")
	}

	col := make([]float64, len(m.Vertices))
	var b Bounds
	for k := 0; k < 3; k++ {
		for i, v := range m.Vertices {
			col[i] = float64(v[k])
		}
		b.Min[k] = floats.Min(col)
		b.Max[k] = floats.Max(col)
	}
	b.Center = b.Min.Add(b.Max).Scale(0.5)
	b.Extent = b.Max.Sub(b.Min)
	return b, nil
}
