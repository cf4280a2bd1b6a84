package checks

import (
	"fmt"
	"strings"

	"github.com/abdidvp/layoutcheck/internal/domain"
	"github.com/fatih/camelcase"
)

const helpBase = "https://support.google.com/accessibility/android/answer/"

// Info describes a registered check for listings.
type Info struct {
	ID       string          `json:"id"`
	Alias    string          `json:"alias"`
	Title    string          `json:"title"`
	Category domain.Category `json:"category"`
	HelpURL  string          `json:"help_url,omitempty"`
	Latest   bool            `json:"latest"`
}

// Provider is the built-in domain.CheckProvider.
type Provider struct {
	order  []string
	checks map[string]domain.Check
	help   map[string]string
	latest map[string]bool
}

// New returns a Provider with every built-in check registered in the
// "latest" preset.
func New() *Provider {
	p := &Provider{
		checks: make(map[string]domain.Check),
		help:   make(map[string]string),
		latest: make(map[string]bool),
	}
	p.Register(speakableTextPresent{}, helpBase+"7158690", true)
	p.Register(editableContentDesc{}, helpBase+"6378120", true)
	p.Register(touchTargetSize{}, helpBase+"7101858", true)
	p.Register(duplicateClickableBounds{}, helpBase+"6378943", true)
	p.Register(duplicateSpeakableText{}, helpBase+"7102513", true)
	p.Register(redundantDescription{}, helpBase+"6378120", true)
	p.Register(linkPurposeUnclear{}, helpBase+"9663489", true)
	p.Register(textContrast{}, helpBase+"7158390", true)
	p.Register(className{}, "", true)
	return p
}

// Register adds c. An empty helpURL means the check has no documentation.
// Re-registering an id replaces the check but keeps its position.
func (p *Provider) Register(c domain.Check, helpURL string, latest bool) {
	id := c.ID()
	if _, ok := p.checks[id]; !ok {
		p.order = append(p.order, id)
	}
	p.checks[id] = c
	if helpURL != "" {
		p.help[id] = helpURL
	} else {
		delete(p.help, id)
	}
	p.latest[id] = latest
}

// Resolve returns checks for ids in the given order, or the latest preset
// in registration order when ids is empty. Ids match either the check id or
// its snake_case alias.
func (p *Provider) Resolve(ids []string) ([]domain.Check, error) {
	if len(ids) == 0 {
		var out []domain.Check
		for _, id := range p.order {
			if p.latest[id] {
				out = append(out, p.checks[id])
			}
		}
		return out, nil
	}

	out := make([]domain.Check, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, raw := range ids {
		id, ok := p.lookup(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCheck, raw)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, p.checks[id])
	}
	return out, nil
}

// HelpURL returns the documentation link for a check id.
func (p *Provider) HelpURL(checkID string) (string, bool) {
	u, ok := p.help[checkID]
	return u, ok
}

// Catalog lists every registered check in registration order.
func (p *Provider) Catalog() []Info {
	out := make([]Info, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, Info{
			ID:       id,
			Alias:    Alias(id),
			Title:    Title(id),
			Category: p.checks[id].Category(),
			HelpURL:  p.help[id],
			Latest:   p.latest[id],
		})
	}
	return out
}

func (p *Provider) lookup(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if _, ok := p.checks[raw]; ok {
		return raw, true
	}
	for _, id := range p.order {
		if Alias(id) == strings.ToLower(raw) {
			return id, true
		}
	}
	return "", false
}

// checkWords splits a check id into words, dropping the trailing "Check".
func checkWords(id string) []string {
	words := camelcase.Split(id)
	if n := len(words); n > 1 && words[n-1] == "Check" {
		words = words[:n-1]
	}
	return words
}

// Title renders a check id for humans: "TouchTargetSizeCheck" becomes
// "Touch Target Size".
func Title(id string) string {
	return strings.Join(checkWords(id), " ")
}

// Alias renders a check id as snake_case: "touch_target_size".
func Alias(id string) string {
	return strings.ToLower(strings.Join(checkWords(id), "_"))
}
