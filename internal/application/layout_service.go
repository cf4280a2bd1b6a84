package application

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

// Overrides replace policy settings from the project config, typically
// from command-line flags. Empty lists keep the configured value.
type Overrides struct {
	Categories []string
	Levels     []string
	Checks     []string
}

// OverridesFor expresses a complete policy as overrides, so it replaces
// whatever the project config says.
func OverridesFor(p domain.Policy) Overrides {
	o := Overrides{Checks: p.Checks()}
	for _, c := range p.Categories() {
		o.Categories = append(o.Categories, string(c))
	}
	for _, l := range p.Levels() {
		o.Levels = append(o.Levels, string(l))
	}
	return o
}

// LayoutService orchestrates validation of layout dumps on disk:
// load config → build policy → load layout and screenshot → validate → report.
type LayoutService struct {
	provider     domain.CheckProvider
	layouts      domain.LayoutLoader
	screenshots  domain.ScreenshotLoader
	scanner      domain.LayoutScanner
	configLoader domain.ConfigLoader
	cache        domain.ReportCache
	logger       *zap.SugaredLogger
}

func NewLayoutService(
	provider domain.CheckProvider,
	layouts domain.LayoutLoader,
	screenshots domain.ScreenshotLoader,
	scanner domain.LayoutScanner,
	configLoader domain.ConfigLoader,
	logger *zap.SugaredLogger,
) *LayoutService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LayoutService{
		provider:     provider,
		layouts:      layouts,
		screenshots:  screenshots,
		scanner:      scanner,
		configLoader: configLoader,
		logger:       logger,
	}
}

// WithCache enables report reuse for unchanged inputs.
func (s *LayoutService) WithCache(cache domain.ReportCache) *LayoutService {
	s.cache = cache
	return s
}

// Policy resolves the effective policy for a project.
func (s *LayoutService) Policy(projectPath string, o Overrides) (domain.Policy, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("loading config: %w", err)
	}
	return buildPolicy(cfg, o)
}

// ValidateFile validates one layout dump. Relative paths are resolved
// against projectPath; screenshotPath may be empty.
func (s *LayoutService) ValidateFile(projectPath, layoutPath, screenshotPath string, o Overrides) (*domain.Report, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	policy, err := buildPolicy(cfg, o)
	if err != nil {
		return nil, err
	}
	return s.validate(projectPath, cfg, policy, domain.LayoutTarget{Layout: layoutPath, Screenshot: screenshotPath})
}

// ValidateAll validates every layout dump found under projectPath.
func (s *LayoutService) ValidateAll(projectPath string, o Overrides) ([]*domain.Report, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	policy, err := buildPolicy(cfg, o)
	if err != nil {
		return nil, err
	}

	targets, err := s.scanner.Scan(projectPath, cfg.ExcludePaths...)
	if err != nil {
		return nil, fmt.Errorf("scanning layouts: %w", err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no layout dumps found under %s", projectPath)
	}

	reports := make([]*domain.Report, 0, len(targets))
	for _, t := range targets {
		rep, err := s.validate(projectPath, cfg, policy, t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Layout, err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// Hierarchy loads a layout dump and snapshots it with the same ids a
// validation run assigns.
func (s *LayoutService) Hierarchy(projectPath, layoutPath string) (*domain.Hierarchy, error) {
	root, err := s.layouts.Load(resolve(projectPath, layoutPath))
	if err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}
	h, err := domain.BuildHierarchy(root, domain.NewNodeMap())
	if err != nil {
		return nil, fmt.Errorf("building hierarchy: %w", err)
	}
	return h, nil
}

func (s *LayoutService) validate(projectPath string, cfg domain.ProjectConfig, policy domain.Policy, t domain.LayoutTarget) (*domain.Report, error) {
	layoutAbs := resolve(projectPath, t.Layout)
	shotAbs := ""
	if t.Screenshot != "" {
		shotAbs = resolve(projectPath, t.Screenshot)
	}

	var key string
	if s.cache != nil {
		key = cacheKey(policy, cfg.CheckParameters(), layoutAbs, shotAbs)
		if cached, err := s.cache.Load(projectPath, key); err == nil && cached != nil {
			s.logger.Debugw("using cached report", "layout", t.Layout, "key", key)
			cached.Cached = true
			cached.Timestamp = time.Now().UTC()
			return cached, nil
		}
	}

	root, err := s.layouts.Load(layoutAbs)
	if err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}

	var img *domain.Image
	if shotAbs != "" {
		img, err = s.screenshots.Load(shotAbs)
		if err != nil {
			return nil, fmt.Errorf("loading screenshot: %w", err)
		}
	}

	v := NewValidator(s.provider, cfg.CheckParameters(), s.logger)
	result, err := v.Validate(root, img, policy)
	if err != nil {
		return nil, err
	}

	rep := domain.NewReport(t.Layout, policy, result)
	rep.Screenshot = t.Screenshot
	s.logger.Infow("validated layout",
		"layout", t.Layout,
		"issues", len(rep.Issues),
		"errors", rep.Count(domain.LevelError),
		"elapsed_ms", rep.Metrics.ElapsedMs,
	)

	if s.cache != nil {
		if err := s.cache.Save(projectPath, key, rep); err != nil {
			s.logger.Warnw("saving report cache failed", "error", err)
		}
	}
	return rep, nil
}

func buildPolicy(cfg domain.ProjectConfig, o Overrides) (domain.Policy, error) {
	if len(o.Categories) > 0 {
		cfg.Policy.Categories = o.Categories
	}
	if len(o.Levels) > 0 {
		cfg.Policy.Levels = o.Levels
	}
	if len(o.Checks) > 0 {
		cfg.Policy.Checks = o.Checks
	}
	if err := cfg.Validate(); err != nil {
		return domain.Policy{}, fmt.Errorf("invalid policy: %w", err)
	}
	return cfg.BuildPolicy()
}

func resolve(projectPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}

// cacheKey hashes everything that can change a report: policy, thresholds
// and the contents of the input files.
func cacheKey(policy domain.Policy, params domain.CheckParameters, layoutPath, shotPath string) string {
	h := sha256.New()
	fmt.Fprintf(h, "categories=%v;levels=%v;checks=%s;",
		policy.Categories(), policy.Levels(), strings.Join(policy.Checks(), ","))
	fmt.Fprintf(h, "params=%d/%.3f/%.3f/%.3f;",
		params.MinTouchTargetDp, params.Density, params.MinContrastRatio, params.MinLargeTextContrastRatio)
	for _, p := range []string{layoutPath, shotPath} {
		if p == "" {
			continue
		}
		fmt.Fprintf(h, "file=%s;", p)
		data, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintf(h, "missing:%s;", p)
			continue
		}
		h.Write(data)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
