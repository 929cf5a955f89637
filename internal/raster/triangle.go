package raster

import (
	"math"

	"linemod-brachmann/internal/mathutil"
)

// projected is a vertex after model-view and pinhole projection.
type projected struct {
	x, y float64 // pixel coordinates
	z    float64 // camera depth, > 0 in front
	ok   bool    // inside the near/far range
}

// rasterizeTriangle draws one triangle into fb with a nearest-wins z-test and
// perspective-correct interpolation of the per-vertex attributes.
// Pixels are sampled at their centres. No allocation in the pixel loop.
func rasterizeTriangle(fb *FrameBuffer, p [3]projected, a [3]mathutil.Vec3) {
	if !p[0].ok || !p[1].ok || !p[2].ok {
		return
	}

	x0, y0 := p[0].x, p[0].y
	x1, y1 := p[1].x, p[1].y
	x2, y2 := p[2].x, p[2].y

	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	iz0, iz1, iz2 := 1/p[0].z, 1/p[1].z, 1/p[2].z

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
				continue
			}
			// keep the attribute inside the triangle's convex hull
			w0, w1, w2 = math.Max(w0, 0), math.Max(w1, 0), math.Max(w2, 0)

			q0, q1, q2 := w0*iz0, w1*iz1, w2*iz2
			iz := q0 + q1 + q2
			if iz <= 0 {
				continue
			}
			z := 1 / iz

			zIdx := rowOff + sx
			if z >= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			for k := 0; k < 3; k++ {
				fb.Color[pxIdx+k] = float32((q0*a[0][k] + q1*a[1][k] + q2*a[2][k]) * z)
			}
			fb.Color[pxIdx+3] = 1
		}
	}
}
