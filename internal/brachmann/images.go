package brachmann

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/HugoSmits86/nativewebp"

	"linemod-brachmann/internal/linemod"
)

// Colour output encodings. Both are lossless.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// DepthImage wraps a depth frame as a 16-bit grayscale image (millimetres).
func DepthImage(d *linemod.Depth) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, d.Cols, d.Rows))
	for r := 0; r < d.Rows; r++ {
		for c := 0; c < d.Cols; c++ {
			i := img.PixOffset(c, r)
			v := d.At(r, c)
			img.Pix[i] = uint8(v >> 8)
			img.Pix[i+1] = uint8(v)
		}
	}
	return img
}

// WriteDepth writes a 16-bit PNG of the depth frame.
func WriteDepth(path string, d *linemod.Depth) error {
	return writePNG(path, DepthImage(d))
}

// WriteColor writes a colour frame as PNG or lossless WebP.
func WriteColor(path string, img *image.NRGBA, format string) error {
	switch format {
	case FormatPNG:
		return writePNG(path, img)
	case FormatWebP:
		return writeFile(path, func(f *os.File) error {
			return nativewebp.Encode(f, img, nil)
		})
	default:
		return fmt.Errorf("brachmann: unknown colour format %q", format)
	}
}

// WriteMask writes an 8-bit 0/255 segmentation mask.
func WriteMask(path string, mask *image.Gray) error {
	return writePNG(path, mask)
}

// WriteObjCoords writes an opaque RGBA64 image, which PNG stores as
// 16-bit 3-channel.
func WriteObjCoords(path string, coords *image.RGBA64) error {
	return writePNG(path, coords)
}

func writePNG(path string, img image.Image) error {
	return writeFile(path, func(f *os.File) error {
		return png.Encode(f, img)
	})
}

func writeFile(path string, encode func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("brachmann: create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("brachmann: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("brachmann: close %s: %w", path, err)
	}
	return nil
}
