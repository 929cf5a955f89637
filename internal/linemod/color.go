package linemod

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// ReadColor decodes a colour frame into NRGBA. The decoder is picked from the
// file extension (.jpg/.jpeg, .png, .tga); tga has no magic bytes, so sniffing
// with image.Decode would hand every frame to it.
// Pixels are copied as-is, no resampling.
func ReadColor(path string) (*image.NRGBA, error) {
	var decode func(io.Reader) (image.Image, error)

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		decode = jpeg.Decode
	case ".png":
		decode = png.Decode
	case ".tga":
		decode = tga.Decode
	default:
		return nil, fmt.Errorf("linemod: unknown colour extension %q: %s", ext, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linemod: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("linemod: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
