// Package raster is a small software renderer producing object-coordinate
// readbacks: every covered pixel carries the normalised object-local position
// of the visible surface point.
package raster

import (
	"errors"
	"fmt"

	"linemod-brachmann/internal/mathutil"
)

// Config describes the virtual camera. Lengths are millimetres.
type Config struct {
	Width  int
	Height int
	Fx     float64
	Fy     float64
	Cx     float64
	Cy     float64
	Near   float64
	Far    float64
}

// Material colours each vertex with (v - Min) / Extent. An axis with zero
// extent (a flat mesh) maps to 0.
type Material struct {
	Min    mathutil.Vec3
	Extent mathutil.Vec3
}

// Color returns the material colour of an object-local point.
func (m Material) Color(v mathutil.Vec3) mathutil.Vec3 {
	var c mathutil.Vec3
	for k := range c {
		d := m.Extent[k]
		if d == 0 {
			d = 1
		}
		c[k] = (v[k] - m.Min[k]) / d
	}
	return c
}

var (
	ErrNotInitialized = errors.New("raster: renderer not initialized")
	ErrNoMesh         = errors.New("raster: no mesh registered")
)

// Renderer is a stateful, single-threaded render target. It is created once
// per run with Init, fed one mesh at a time, and released with Teardown.
type Renderer struct {
	cfg   Config
	ready bool

	verts []mathutil.Vec3
	attrs []mathutil.Vec3
	tris  [][3]uint32

	modelView mathutil.Mat4
	proj      []projected
	fb        *FrameBuffer
}

// NewRenderer returns an uninitialised renderer.
func NewRenderer() *Renderer {
	return &Renderer{modelView: mathutil.Mat4Identity()}
}

// Init allocates the render target. Calling it again before Teardown fails.
func (r *Renderer) Init(cfg Config) error {
	if r.ready {
		return errors.New("raster: renderer already initialized")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("raster: bad size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Fx <= 0 || cfg.Fy <= 0 {
		return fmt.Errorf("raster: bad focal length %g/%g", cfg.Fx, cfg.Fy)
	}
	if cfg.Near <= 0 || cfg.Near >= cfg.Far {
		return fmt.Errorf("raster: bad clip range [%g, %g]", cfg.Near, cfg.Far)
	}
	r.cfg = cfg
	r.fb = NewFrameBuffer(cfg.Width, cfg.Height)
	r.ready = true
	return nil
}

// SetMesh registers an object's geometry and material, replacing any
// previous mesh.
func (r *Renderer) SetMesh(vertices [][3]float32, indices [][3]uint32, mat Material) error {
	if !r.ready {
		return ErrNotInitialized
	}
	for i, tri := range indices {
		for _, idx := range tri {
			if int(idx) >= len(vertices) {
				return fmt.Errorf("raster: triangle %d: index %d out of range", i, idx)
			}
		}
	}

	r.verts = make([]mathutil.Vec3, len(vertices))
	r.attrs = make([]mathutil.Vec3, len(vertices))
	for i, v := range vertices {
		r.verts[i] = mathutil.Vec3FromFloat32(v)
		r.attrs[i] = mat.Color(r.verts[i])
	}
	r.tris = indices
	r.proj = make([]projected, len(vertices))
	return nil
}

// SetPose places the object in the LINEMOD camera frame: rotation rot and
// translation tMM in millimetres.
func (r *Renderer) SetPose(rot mathutil.Mat3, tMM mathutil.Vec3) {
	r.modelView = mathutil.Mat4Mul(mathutil.FromMat3(mathutil.LinemodToCV), mathutil.FromMat3Translation(rot, tMM))
}

// RenderFrame draws the registered mesh at the current pose. The returned
// buffer is owned by the renderer and overwritten by the next call.
func (r *Renderer) RenderFrame() (*FrameBuffer, error) {
	if !r.ready {
		return nil, ErrNotInitialized
	}
	if r.verts == nil {
		return nil, ErrNoMesh
	}

	c := r.cfg
	for i, v := range r.verts {
		p := r.modelView.MulPoint(v)
		if p[2] < c.Near || p[2] > c.Far {
			r.proj[i] = projected{}
			continue
		}
		r.proj[i] = projected{
			x:  c.Fx*p[0]/p[2] + c.Cx,
			y:  c.Fy*p[1]/p[2] + c.Cy,
			z:  p[2],
			ok: true,
		}
	}

	r.fb.Clear()
	for _, tri := range r.tris {
		rasterizeTriangle(r.fb,
			[3]projected{r.proj[tri[0]], r.proj[tri[1]], r.proj[tri[2]]},
			[3]mathutil.Vec3{r.attrs[tri[0]], r.attrs[tri[1]], r.attrs[tri[2]]},
		)
	}
	return r.fb, nil
}

// Teardown releases the render target. The renderer may be re-initialised.
func (r *Renderer) Teardown() error {
	if !r.ready {
		return ErrNotInitialized
	}
	*r = *NewRenderer()
	return nil
}
