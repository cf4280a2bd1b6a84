package domain

import "fmt"

// BytesPerPixel is the size of one ARGB_8888 pixel.
const BytesPerPixel = 4

// Image is a view onto an ARGB pixel buffer. Crops share the backing
// buffer; each keeps its own rectangle.
type Image struct {
	buf     []uint32
	stride  int
	rect    Rect
	metrics *Metrics
}

// NewImage wraps pixels, row-major with the given width and height.
func NewImage(width, height int, pixels []uint32) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image size %dx%d must be positive", width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("image %dx%d needs %d pixels, got %d", width, height, width*height, len(pixels))
	}
	return &Image{
		buf:    pixels,
		stride: width,
		rect:   Rect{Right: width, Bottom: height},
	}, nil
}

func (i *Image) Width() int  { return i.rect.Width() }
func (i *Image) Height() int { return i.rect.Height() }

// WithMetrics returns a wrapper over the same rectangle whose pixel copies
// are charged to m.
func (i *Image) WithMetrics(m *Metrics) *Image {
	out := *i
	out.metrics = m
	return &out
}

// Crop returns a view of the w×h rectangle at (left, top), relative to i.
// The original is left untouched.
func (i *Image) Crop(left, top, w, h int) (*Image, error) {
	if left < 0 || top < 0 || w <= 0 || h <= 0 || w > i.Width()-left || h > i.Height()-top {
		return nil, fmt.Errorf("crop (%d,%d %dx%d) of %dx%d: %w", left, top, w, h, i.Width(), i.Height(), ErrInvalidCrop)
	}
	out := *i
	out.rect = Rect{
		Left:   i.rect.Left + left,
		Top:    i.rect.Top + top,
		Right:  i.rect.Left + left + w,
		Bottom: i.rect.Top + top + h,
	}
	return &out, nil
}

// At returns the pixel at (x, y) relative to i without copying.
func (i *Image) At(x, y int) uint32 {
	return i.buf[(i.rect.Top+y)*i.stride+i.rect.Left+x]
}

// Pixels returns a fresh copy of the rectangle's pixels, row-major.
// Callers may modify the returned slice.
func (i *Image) Pixels() []uint32 {
	w, h := i.Width(), i.Height()
	out := make([]uint32, 0, w*h)
	for y := 0; y < h; y++ {
		start := (i.rect.Top+y)*i.stride + i.rect.Left
		out = append(out, i.buf[start:start+w]...)
	}
	if i.metrics != nil {
		i.metrics.AddImageMemory(int64(w * h * BytesPerPixel))
	}
	return out
}
