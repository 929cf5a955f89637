package batch

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"linemod-brachmann/internal/mathutil"
	"linemod-brachmann/internal/raster"
)

// ErrReadbackRange means the renderer returned values outside [0,1], which
// only happens when its material does not match the object extent.
var ErrReadbackRange = errors.New("readback outside [0,1]")

// Renderer is the object-coordinate render collaborator used per frame.
type Renderer interface {
	SetMesh(vertices [][3]float32, indices [][3]uint32, mat raster.Material) error
	SetPose(rot mathutil.Mat3, tMM mathutil.Vec3)
	RenderFrame() (*raster.FrameBuffer, error)
}

// DecodeReadback turns a renderer readback into a 0/255 mask and a 16-bit
// object-coordinate image. Coordinates are millimetres relative to the box
// centre (coord·extent − extent/2), stored as int16 in the R, G, B channels.
func DecodeReadback(fb *raster.FrameBuffer, extentMM mathutil.Vec3) (*image.Gray, *image.RGBA64, error) {
	for i, v := range fb.Color {
		if !(v >= 0 && v <= 1) {
			px := i / 4
			return nil, nil, fmt.Errorf("pixel (%d,%d) channel %d = %g: %w",
				px%fb.Width, px/fb.Width, i%4, v, ErrReadbackRange)
		}
	}

	rect := image.Rect(0, 0, fb.Width, fb.Height)
	mask := image.NewGray(rect)
	coords := image.NewRGBA64(rect)

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			px := fb.At(x, y)
			c := color.RGBA64{A: 0xffff}
			if px[3] > 0 {
				mask.SetGray(x, y, color.Gray{Y: 255})
				c.R = objCoord(px[0], extentMM[0])
				c.G = objCoord(px[1], extentMM[1])
				c.B = objCoord(px[2], extentMM[2])
			}
			coords.SetRGBA64(x, y, c)
		}
	}
	return mask, coords, nil
}

func objCoord(v float32, extent float64) uint16 {
	mm := math.Round(float64(v)*extent - extent/2)
	return uint16(int16(mm))
}
