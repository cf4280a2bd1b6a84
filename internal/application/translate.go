package application

import (
	"errors"
	"fmt"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

var errNoMessage = errors.New("finding has no message")

// translate turns one raw finding into an Issue. keep is false when the
// finding's level is filtered out by the policy.
func (v *Validator) translate(h *domain.Hierarchy, policy domain.Policy, category domain.Category, f domain.RawFinding) (issue domain.Issue, keep bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			issue, keep = domain.Issue{}, false
			err = fmt.Errorf("translating %s finding: %v", f.CheckID, r)
		}
	}()

	level := f.Type.Level()
	if !policy.HasLevel(level) {
		return domain.Issue{}, false, nil
	}

	if f.Message == nil {
		return domain.Issue{}, false, errNoMessage
	}
	text, err := f.Message.Localize(domain.Locale)
	if err != nil {
		return domain.Issue{}, false, err
	}

	issue = domain.Issue{
		Category: category,
		Message:  text,
		Level:    level,
		Fix:      &domain.Fix{},
		CheckID:  f.CheckID,
	}
	if f.ElementID != nil {
		e, err := h.Element(*f.ElementID)
		if err != nil {
			return domain.Issue{}, false, err
		}
		id := e.ID
		issue.NodeID = &id
	}
	if u, ok := v.provider.HelpURL(f.CheckID); ok {
		issue.HelpURL = u
	}
	return issue, true, nil
}

// internalError records a failure of the pipeline itself as an Issue.
func internalError(checkID string, err error) domain.Issue {
	return domain.Issue{
		Category: domain.CategoryInternalError,
		Message:  err.Error(),
		Level:    domain.LevelError,
		CheckID:  checkID,
	}
}
