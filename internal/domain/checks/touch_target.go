package checks

import (
	"math"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

// touchTargetSize flags actionable items smaller than the minimum target.
type touchTargetSize struct{}

func (touchTargetSize) ID() string                { return "TouchTargetSizeCheck" }
func (touchTargetSize) Category() domain.Category { return domain.CategoryAccessibility }

func (c touchTargetSize) Run(h *domain.Hierarchy, params domain.CheckParameters) ([]domain.RawFinding, error) {
	density := params.Density
	if density <= 0 {
		density = 1
	}
	minDp := params.MinTouchTargetDp

	var out []domain.RawFinding
	for _, e := range h.Elements {
		if !inspectable(e) {
			continue
		}
		if !actionable(e) {
			out = append(out, finding(c.ID(), domain.ResultNotRun, e, msg("touch_target.not_run")))
			continue
		}
		w := int(math.Round(float64(e.Bounds.Width()) / density))
		hgt := int(math.Round(float64(e.Bounds.Height()) / density))
		if w < minDp || hgt < minDp {
			out = append(out, finding(c.ID(), domain.ResultError, e, msg("touch_target.small", w, hgt, minDp, minDp)))
		}
	}
	return out, nil
}

// duplicateClickableBounds flags actionable items stacked on the exact
// bounds of an earlier actionable item.
type duplicateClickableBounds struct{}

func (duplicateClickableBounds) ID() string                { return "DuplicateClickableBoundsCheck" }
func (duplicateClickableBounds) Category() domain.Category { return domain.CategoryAccessibility }

func (c duplicateClickableBounds) Run(h *domain.Hierarchy, _ domain.CheckParameters) ([]domain.RawFinding, error) {
	seen := make(map[domain.Rect]int)
	var out []domain.RawFinding
	for _, e := range h.Elements {
		if !inspectable(e) || !actionable(e) {
			continue
		}
		if n := seen[e.Bounds]; n > 0 {
			out = append(out, finding(c.ID(), domain.ResultWarning, e, msg("duplicate_bounds.shared", n)))
		}
		seen[e.Bounds]++
	}
	return out, nil
}
