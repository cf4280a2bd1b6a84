package application

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

// Validator runs the check pipeline over one view tree:
// snapshot hierarchy → resolve checks → run each → translate and filter
// findings → frozen Result.
type Validator struct {
	provider domain.CheckProvider
	params   domain.CheckParameters
	logger   *zap.SugaredLogger
}

func NewValidator(provider domain.CheckProvider, params domain.CheckParameters, logger *zap.SugaredLogger) *Validator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Validator{
		provider: provider,
		params:   params,
		logger:   logger,
	}
}

// Validate checks the tree under root against policy. img is the rendered
// screenshot and may be nil.
//
// An unattached root, or a policy without the accessibility category,
// yields an empty Result. Failures while building the hierarchy or
// resolving checks are returned as errors; failures inside a single check
// or while translating a single finding become internal_error issues.
func (v *Validator) Validate(root domain.View, img *domain.Image, policy domain.Policy) (*domain.Result, error) {
	b := domain.NewResultBuilder()

	if root == nil || !root.Attached() {
		v.logger.Debug("root view not attached, skipping validation")
		return b.Build(), nil
	}
	// Render and internal-error checks are not implemented.
	if !policy.HasCategory(domain.CategoryAccessibility) {
		v.logger.Debugw("accessibility category disabled, skipping validation", "categories", policy.Categories())
		return b.Build(), nil
	}

	b.Metrics.StartTimer()

	h, err := domain.BuildHierarchy(root, b.Nodes)
	if err != nil {
		return nil, fmt.Errorf("building hierarchy: %w", err)
	}

	checks, err := v.provider.Resolve(policy.Checks())
	if err != nil {
		return nil, fmt.Errorf("resolving checks: %w", err)
	}

	params := v.params
	if img != nil {
		params.Screenshot = img.WithMetrics(&b.Metrics)
	}

	for _, c := range checks {
		findings, err := runCheck(c, h, params)
		if err != nil {
			v.logger.Warnw("check failed", "check", c.ID(), "error", err)
			if b.Metrics.ErrorMessage == "" {
				b.Metrics.ErrorMessage = err.Error()
			}
			b.AddIssue(internalError(c.ID(), err))
			continue
		}
		v.logger.Debugw("check ran", "check", c.ID(), "findings", len(findings))

		for _, f := range findings {
			issue, keep, err := v.translate(h, policy, c.Category(), f)
			if err != nil {
				v.logger.Warnw("finding translation failed", "check", f.CheckID, "error", err)
				b.AddIssue(internalError(f.CheckID, err))
				continue
			}
			if keep {
				b.AddIssue(issue)
			}
		}
	}

	b.Metrics.EndTimer()
	result := b.Build()
	v.logger.Debugw("validation finished",
		"elements", len(h.Elements),
		"checks", len(checks),
		"issues", len(result.Issues()),
		"elapsed_ms", result.Metrics().ElapsedMs,
	)
	return result, nil
}

// ValidateCurrent validates against the process-wide policy, captured once
// at entry.
func (v *Validator) ValidateCurrent(root domain.View, img *domain.Image) (*domain.Result, error) {
	return v.Validate(root, img, domain.CurrentPolicy())
}

func runCheck(c domain.Check, h *domain.Hierarchy, params domain.CheckParameters) (findings []domain.RawFinding, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check %s panicked: %v", c.ID(), r)
		}
	}()
	return c.Run(h, params)
}
