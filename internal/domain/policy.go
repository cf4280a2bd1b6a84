package domain

import (
	"fmt"
	"sync/atomic"
)

// Category groups checks by what they inspect.
type Category string

const (
	CategoryAccessibility Category = "accessibility"
	CategoryRender        Category = "render"
	CategoryInternalError Category = "internal_error"
)

// ValidCategories enumerates all check categories.
var ValidCategories = []Category{
	CategoryAccessibility,
	CategoryRender,
	CategoryInternalError,
}

// Level is the severity attached to an Issue.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
	LevelVerbose Level = "verbose"
)

// ValidLevels enumerates all severity levels, most severe first.
var ValidLevels = []Level{
	LevelError,
	LevelWarning,
	LevelInfo,
	LevelVerbose,
}

// ParseCategory converts a config or flag value into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range ValidCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (valid: accessibility, render, internal_error)", s)
}

// ParseLevel converts a config or flag value into a Level.
func ParseLevel(s string) (Level, error) {
	for _, l := range ValidLevels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q (valid: error, warning, info, verbose)", s)
}

// Policy selects which categories, severities and checks a validation run
// uses. A Policy is immutable; WithChecks returns a modified copy.
type Policy struct {
	categories map[Category]bool
	levels     map[Level]bool
	checks     []string
}

// NewPolicy builds a Policy. Both sets must be non-empty; any combination
// of members is accepted.
func NewPolicy(categories []Category, levels []Level) (Policy, error) {
	if len(categories) == 0 {
		return Policy{}, ErrEmptyCategories
	}
	if len(levels) == 0 {
		return Policy{}, ErrEmptyLevels
	}

	p := Policy{
		categories: make(map[Category]bool, len(categories)),
		levels:     make(map[Level]bool, len(levels)),
	}
	for _, c := range categories {
		p.categories[c] = true
	}
	for _, l := range levels {
		p.levels[l] = true
	}
	return p, nil
}

// WithChecks returns a copy of p narrowed to the given check ids. An empty
// list restores the default preset.
func (p Policy) WithChecks(ids ...string) Policy {
	out := Policy{
		categories: p.categories,
		levels:     p.levels,
	}
	if len(ids) > 0 {
		out.checks = append([]string(nil), ids...)
	}
	return out
}

// HasCategory reports whether checks of category c are enabled.
func (p Policy) HasCategory(c Category) bool { return p.categories[c] }

// HasLevel reports whether issues of level l are kept.
func (p Policy) HasLevel(l Level) bool { return p.levels[l] }

// Categories returns the enabled categories in declaration order.
func (p Policy) Categories() []Category {
	var out []Category
	for _, c := range ValidCategories {
		if p.categories[c] {
			out = append(out, c)
		}
	}
	return out
}

// Levels returns the enabled levels, most severe first.
func (p Policy) Levels() []Level {
	var out []Level
	for _, l := range ValidLevels {
		if p.levels[l] {
			out = append(out, l)
		}
	}
	return out
}

// Checks returns the explicit check set. Empty means the default preset.
func (p Policy) Checks() []string {
	return append([]string(nil), p.checks...)
}

// DefaultPolicy returns the policy used when none has been installed:
// accessibility and render checks, keeping errors and warnings.
func DefaultPolicy() Policy {
	p, _ := NewPolicy(
		[]Category{CategoryAccessibility, CategoryRender},
		[]Level{LevelError, LevelWarning},
	)
	return p
}

var currentPolicy atomic.Pointer[Policy]

// SetPolicy installs p as the process-wide policy. Runs already in
// progress keep the snapshot they captured at entry.
func SetPolicy(p Policy) {
	currentPolicy.Store(&p)
}

// ResetPolicy restores DefaultPolicy as the process-wide policy.
func ResetPolicy() {
	currentPolicy.Store(nil)
}

// CurrentPolicy returns a snapshot of the process-wide policy.
func CurrentPolicy() Policy {
	if p := currentPolicy.Load(); p != nil {
		return *p
	}
	return DefaultPolicy()
}
