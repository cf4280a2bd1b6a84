package checks

import (
	"math"
	"sort"
	"strings"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

// largeTextSp is the text size from which the relaxed ratio applies.
const largeTextSp = 18

// warnMargin is how far below the threshold a ratio may fall and still be
// reported as a warning rather than an error.
const warnMargin = 0.1

// textContrast estimates the contrast between an item's text and its
// background, from declared colors or from the screenshot.
type textContrast struct{}

func (textContrast) ID() string                { return "TextContrastCheck" }
func (textContrast) Category() domain.Category { return domain.CategoryAccessibility }

func (c textContrast) Run(h *domain.Hierarchy, params domain.CheckParameters) ([]domain.RawFinding, error) {
	var out []domain.RawFinding
	for _, e := range h.Elements {
		if !inspectable(e) || strings.TrimSpace(e.Text) == "" {
			continue
		}

		fg, bg, reason, err := c.colors(e, params.Screenshot)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			out = append(out, finding(c.ID(), domain.ResultNotRun, e, msg(reason)))
			continue
		}

		required := params.MinContrastRatio
		if e.TextSizeSp >= largeTextSp {
			required = params.MinLargeTextContrastRatio
		}
		ratio := ContrastRatio(fg, bg)
		if ratio >= required {
			continue
		}
		typ := domain.ResultError
		if required-ratio <= warnMargin {
			typ = domain.ResultWarning
		}
		out = append(out, finding(c.ID(), typ, e,
			msg("text_contrast.low", ratio, fg&0xFFFFFF, bg&0xFFFFFF, required)))
	}
	return out, nil
}

// colors returns opaque foreground and background colors for e, or the
// message key explaining why none could be determined.
func (textContrast) colors(e *domain.Element, shot *domain.Image) (fg, bg uint32, reason string, err error) {
	if e.TextColor != nil && e.BackgroundColor != nil {
		bg = *e.BackgroundColor
		if bg>>24 != 0xFF {
			return 0, 0, "text_contrast.not_run.alpha", nil
		}
		return blend(*e.TextColor, bg), bg, "", nil
	}
	if shot == nil {
		return 0, 0, "text_contrast.not_run.colors", nil
	}

	r := clip(e.Bounds, shot.Width(), shot.Height())
	if r.Empty() {
		return 0, 0, "text_contrast.not_run.bounds", nil
	}
	crop, err := shot.Crop(r.Left, r.Top, r.Width(), r.Height())
	if err != nil {
		return 0, 0, "", err
	}
	top := dominantColors(crop.Pixels(), 2)
	if len(top) < 2 {
		return 0, 0, "text_contrast.not_run.flat", nil
	}
	// The most frequent color in a text region is its background.
	return top[1] | 0xFF000000, top[0] | 0xFF000000, "", nil
}

func clip(r domain.Rect, w, h int) domain.Rect {
	return domain.Rect{
		Left:   max(r.Left, 0),
		Top:    max(r.Top, 0),
		Right:  min(r.Right, w),
		Bottom: min(r.Bottom, h),
	}
}

// dominantColors returns up to n RGB colors ordered by frequency, ties
// broken by color value.
func dominantColors(pixels []uint32, n int) []uint32 {
	counts := make(map[uint32]int)
	for _, p := range pixels {
		counts[p&0xFFFFFF]++
	}
	colors := make([]uint32, 0, len(counts))
	for c := range counts {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		if counts[colors[i]] != counts[colors[j]] {
			return counts[colors[i]] > counts[colors[j]]
		}
		return colors[i] < colors[j]
	})
	if len(colors) > n {
		colors = colors[:n]
	}
	return colors
}

// blend composites fg over an opaque bg.
func blend(fg, bg uint32) uint32 {
	a := float64(fg>>24) / 255
	mix := func(shift uint) uint32 {
		f := float64((fg >> shift) & 0xFF)
		b := float64((bg >> shift) & 0xFF)
		return uint32(math.Round(f*a+b*(1-a))) << shift
	}
	return 0xFF000000 | mix(16) | mix(8) | mix(0)
}

// Luminance is the WCAG relative luminance of an ARGB color.
func Luminance(c uint32) float64 {
	channel := func(v uint32) float64 {
		s := float64(v&0xFF) / 255
		if s <= 0.03928 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(c>>16) + 0.7152*channel(c>>8) + 0.0722*channel(c)
}

// ContrastRatio is the WCAG contrast ratio between two opaque colors, in
// [1, 21].
func ContrastRatio(a, b uint32) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}
