package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linemod-brachmann/internal/mathutil"
)

var testCam = Config{Width: 64, Height: 48, Fx: 100, Fy: 100, Cx: 32, Cy: 24, Near: 10, Far: 10000}

// square returns a 200 mm square in the object xy plane at height z.
func square(z float32, base uint32) ([][3]float32, [][3]uint32) {
	verts := [][3]float32{{-100, -100, z}, {100, -100, z}, {100, 100, z}, {-100, 100, z}}
	tris := [][3]uint32{{base, base + 1, base + 2}, {base, base + 2, base + 3}}
	return verts, tris
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r := NewRenderer()
	require.NoError(t, r.Init(testCam))
	t.Cleanup(func() { _ = r.Teardown() })
	return r
}

func coverage(fb *FrameBuffer) int {
	n := 0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if fb.At(x, y)[3] > 0 {
				n++
			}
		}
	}
	return n
}

func TestRenderSquare(t *testing.T) {
	r := newTestRenderer(t)
	verts, tris := square(0, 0)
	mat := Material{Min: mathutil.Vec3{-100, -100, 0}, Extent: mathutil.Vec3{200, 200, 1}}
	require.NoError(t, r.SetMesh(verts, tris, mat))

	// LINEMOD cameras look down -z
	r.SetPose(mathutil.Mat3Identity(), mathutil.Vec3{0, 0, -500})
	fb, err := r.RenderFrame()
	require.NoError(t, err)

	// the square spans u in [12,52], v in [4,44]
	assert.Equal(t, 40*40, coverage(fb))
	assert.Equal(t, [4]float32{}, fb.At(0, 0))

	px := fb.At(32, 24)
	assert.InDelta(t, 0.5125, px[0], 1e-5)
	assert.InDelta(t, 0.4875, px[1], 1e-5)
	assert.InDelta(t, 0, px[2], 1e-6)
	assert.Equal(t, float32(1), px[3])
	assert.InDelta(t, 500, fb.ZBuf[24*fb.Width+32], 1e-9)

	// object +y is image up
	top := fb.At(32, 5)
	assert.Greater(t, top[1], float32(0.9))

	for _, v := range fb.Color {
		assert.True(t, v >= 0 && v <= 1)
	}
}

func TestRenderFlatMesh(t *testing.T) {
	r := newTestRenderer(t)
	verts, tris := square(0, 0)
	mat := Material{Min: mathutil.Vec3{-100, -100, 0}, Extent: mathutil.Vec3{200, 200, 0}}
	assert.Equal(t, mathutil.Vec3{0.5, 1, 0}, mat.Color(mathutil.Vec3{0, 100, 0}))
	require.NoError(t, r.SetMesh(verts, tris, mat))

	r.SetPose(mathutil.Mat3Identity(), mathutil.Vec3{0, 0, -500})
	fb, err := r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, 40*40, coverage(fb))
	for _, v := range fb.Color {
		assert.True(t, v >= 0 && v <= 1, "got %v", v)
	}
	assert.Equal(t, float32(0), fb.At(32, 24)[2])
}

func TestRenderNearestWins(t *testing.T) {
	far, farTris := square(0, 0)
	near, nearTris := square(50, 4)
	mat := Material{Min: mathutil.Vec3{-100, -100, 0}, Extent: mathutil.Vec3{200, 200, 50}}

	for name, order := range map[string][][3]uint32{
		"far first":  append(append([][3]uint32{}, farTris...), nearTris...),
		"near first": append(append([][3]uint32{}, nearTris...), farTris...),
	} {
		t.Run(name, func(t *testing.T) {
			r := newTestRenderer(t)
			require.NoError(t, r.SetMesh(append(append([][3]float32{}, far...), near...), order, mat))
			r.SetPose(mathutil.Mat3Identity(), mathutil.Vec3{0, 0, -500})

			fb, err := r.RenderFrame()
			require.NoError(t, err)
			assert.InDelta(t, 1, fb.At(32, 24)[2], 1e-6)
			assert.InDelta(t, 450, fb.ZBuf[24*fb.Width+32], 1e-9)
		})
	}
}

func TestRenderBehindCamera(t *testing.T) {
	r := newTestRenderer(t)
	verts, tris := square(0, 0)
	require.NoError(t, r.SetMesh(verts, tris, Material{Extent: mathutil.Vec3{1, 1, 1}}))

	r.SetPose(mathutil.Mat3Identity(), mathutil.Vec3{0, 0, 500})
	fb, err := r.RenderFrame()
	require.NoError(t, err)
	assert.Zero(t, coverage(fb))

	// a second frame reuses the buffer and must not keep old pixels
	r.SetPose(mathutil.Mat3Identity(), mathutil.Vec3{0, 0, -500})
	fb, err = r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, 1600, coverage(fb))

	r.SetPose(mathutil.Mat3Identity(), mathutil.Vec3{0, 0, 500})
	fb, err = r.RenderFrame()
	require.NoError(t, err)
	assert.Zero(t, coverage(fb))
}

func TestRendererLifecycle(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderFrame()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, r.SetMesh(nil, nil, Material{}), ErrNotInitialized)
	assert.ErrorIs(t, r.Teardown(), ErrNotInitialized)

	require.NoError(t, r.Init(testCam))
	assert.Error(t, r.Init(testCam))

	_, err = r.RenderFrame()
	assert.ErrorIs(t, err, ErrNoMesh)

	assert.Error(t, r.SetMesh([][3]float32{{0, 0, 0}}, [][3]uint32{{0, 0, 1}}, Material{}))

	require.NoError(t, r.Teardown())
	require.NoError(t, r.Init(testCam))
	require.NoError(t, r.Teardown())
}

func TestInitValidation(t *testing.T) {
	bad := map[string]Config{
		"zero size":  {Width: 0, Height: 10, Fx: 1, Fy: 1, Near: 1, Far: 2},
		"zero focal": {Width: 10, Height: 10, Fx: 0, Fy: 1, Near: 1, Far: 2},
		"clip range": {Width: 10, Height: 10, Fx: 1, Fy: 1, Near: 5, Far: 2},
	}
	for name, cfg := range bad {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, NewRenderer().Init(cfg))
		})
	}
}
