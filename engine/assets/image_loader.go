package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io/fs"
	"os"
)

// LoadPNG returns width, height, and tightly packed RGBA8 pixels.
// Rows are flipped so the first row is the bottom one, matching OpenGL's
// bottom-left origin and the texCoord convention of the fullscreen quad.
func LoadPNG(fsys fs.FS, path string) (w, h int, rgba []byte, err error) {
	var f fs.File
	if fsys == nil {
		f, err = os.Open(path)
	} else {
		f, err = fsys.Open(path)
	}
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode png %q: %w", path, err)
	}

	src := imageToRGBA(img)
	w, h = src.Bounds().Dx(), src.Bounds().Dy()

	out := make([]byte, w*h*4)
	row := w * 4
	for y := 0; y < h; y++ {
		dst := (h - 1 - y) * row
		copy(out[dst:dst+row], src.Pix[y*src.Stride:y*src.Stride+row])
	}

	return w, h, out, nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
