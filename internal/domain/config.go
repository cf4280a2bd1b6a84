package domain

import "fmt"

// ProjectConfig holds project-level configuration loaded from .layoutcheck.yaml.
type ProjectConfig struct {
	Policy       PolicyConfig      `yaml:"policy"        json:"policy"`
	TouchTarget  TouchTargetConfig `yaml:"touch_target"  json:"touch_target"`
	Contrast     ContrastConfig    `yaml:"contrast"      json:"contrast"`
	ExcludePaths []string          `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
	Logging      LoggingConfig     `yaml:"logging"       json:"logging"`
}

// PolicyConfig is the raw form of a Policy. Empty lists fall back to
// DefaultPolicy.
type PolicyConfig struct {
	Categories []string `yaml:"categories" json:"categories,omitempty"`
	Levels     []string `yaml:"levels"     json:"levels,omitempty"`
	Checks     []string `yaml:"checks"     json:"checks,omitempty"`
}

type TouchTargetConfig struct {
	MinDp   int     `yaml:"min_dp"  json:"min_dp,omitempty"`
	Density float64 `yaml:"density" json:"density,omitempty"`
}

type ContrastConfig struct {
	MinRatio          float64 `yaml:"min_ratio"            json:"min_ratio,omitempty"`
	MinLargeTextRatio float64 `yaml:"min_large_text_ratio" json:"min_large_text_ratio,omitempty"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"  json:"level,omitempty"`
	Format string `yaml:"format" json:"format,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

var (
	validLogLevels  = []string{"", "debug", "info", "warn", "error"}
	validLogFormats = []string{"", "console", "json"}
)

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	for _, s := range c.Policy.Categories {
		if _, err := ParseCategory(s); err != nil {
			return fmt.Errorf("policy.categories: %w", err)
		}
	}
	for _, s := range c.Policy.Levels {
		if _, err := ParseLevel(s); err != nil {
			return fmt.Errorf("policy.levels: %w", err)
		}
	}
	for i, id := range c.Policy.Checks {
		if id == "" {
			return fmt.Errorf("policy.checks[%d] must not be empty", i)
		}
	}

	if c.TouchTarget.MinDp < 0 {
		return fmt.Errorf("touch_target.min_dp must be > 0 (got %d)", c.TouchTarget.MinDp)
	}
	if c.TouchTarget.Density < 0 {
		return fmt.Errorf("touch_target.density must be > 0 (got %.2f)", c.TouchTarget.Density)
	}
	if c.Contrast.MinRatio < 0 || c.Contrast.MinRatio > 21 {
		return fmt.Errorf("contrast.min_ratio must be between 1 and 21 (got %.2f)", c.Contrast.MinRatio)
	}
	if c.Contrast.MinLargeTextRatio < 0 || c.Contrast.MinLargeTextRatio > 21 {
		return fmt.Errorf("contrast.min_large_text_ratio must be between 1 and 21 (got %.2f)", c.Contrast.MinLargeTextRatio)
	}

	if !contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("unknown logging.level %q (valid: debug, info, warn, error)", c.Logging.Level)
	}
	if !contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("unknown logging.format %q (valid: console, json)", c.Logging.Format)
	}
	return nil
}

// BuildPolicy converts the policy section into a Policy. Unset lists take
// their members from DefaultPolicy.
func (c ProjectConfig) BuildPolicy() (Policy, error) {
	def := DefaultPolicy()

	categories := def.Categories()
	if len(c.Policy.Categories) > 0 {
		categories = categories[:0:0]
		for _, s := range c.Policy.Categories {
			cat, err := ParseCategory(s)
			if err != nil {
				return Policy{}, err
			}
			categories = append(categories, cat)
		}
	}

	levels := def.Levels()
	if len(c.Policy.Levels) > 0 {
		levels = levels[:0:0]
		for _, s := range c.Policy.Levels {
			l, err := ParseLevel(s)
			if err != nil {
				return Policy{}, err
			}
			levels = append(levels, l)
		}
	}

	p, err := NewPolicy(categories, levels)
	if err != nil {
		return Policy{}, err
	}
	return p.WithChecks(c.Policy.Checks...), nil
}

// CheckParameters merges configured thresholds over the defaults.
func (c ProjectConfig) CheckParameters() CheckParameters {
	p := DefaultCheckParameters()
	if c.TouchTarget.MinDp > 0 {
		p.MinTouchTargetDp = c.TouchTarget.MinDp
	}
	if c.TouchTarget.Density > 0 {
		p.Density = c.TouchTarget.Density
	}
	if c.Contrast.MinRatio > 0 {
		p.MinContrastRatio = c.Contrast.MinRatio
	}
	if c.Contrast.MinLargeTextRatio > 0 {
		p.MinLargeTextContrastRatio = c.Contrast.MinLargeTextRatio
	}
	return p
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
