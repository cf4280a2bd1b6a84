package screenshot

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

// Loader implements domain.ScreenshotLoader for PNG and JPEG files.
type Loader struct{}

func New() *Loader { return &Loader{} }

func (l *Loader) Load(path string) (*domain.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Decode reads an encoded image into ARGB pixels.
func Decode(r io.Reader) (*domain.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(src)
}

// FromImage converts any image.Image into a domain.Image.
func FromImage(src image.Image) (*domain.Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]uint32, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			pixels = append(pixels, uint32(c.A)<<24|uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B))
		}
	}
	return domain.NewImage(w, h, pixels)
}
