package raster

import "math"

// FrameBuffer holds one readback as flat slices for cache locality.
// Color is RGBA interleaved float32: channels 0-2 are the interpolated
// material colour, channel 3 is 1 where a triangle covers the pixel.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []float32 // len = W*H*4
	ZBuf   []float64 // camera depth per pixel (mm), +inf where empty
}

// NewFrameBuffer allocates a zeroed colour buffer and +inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]float32, n*4),
		ZBuf:   make([]float64, n),
	}
	fb.Clear()
	return fb
}

// Clear resets the buffer to empty.
func (fb *FrameBuffer) Clear() {
	for i := range fb.Color {
		fb.Color[i] = 0
	}
	for i := range fb.ZBuf {
		fb.ZBuf[i] = math.Inf(1)
	}
}

// At returns the RGBA readback of pixel (x, y).
func (fb *FrameBuffer) At(x, y int) [4]float32 {
	i := (y*fb.Width + x) * 4
	return [4]float32{fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3]}
}
