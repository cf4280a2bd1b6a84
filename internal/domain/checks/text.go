package checks

import (
	"regexp"
	"strings"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

// speakableTextPresent flags focusable items with nothing to announce.
type speakableTextPresent struct{}

func (speakableTextPresent) ID() string                { return "SpeakableTextPresentCheck" }
func (speakableTextPresent) Category() domain.Category { return domain.CategoryAccessibility }

func (c speakableTextPresent) Run(h *domain.Hierarchy, _ domain.CheckParameters) ([]domain.RawFinding, error) {
	var out []domain.RawFinding
	for _, e := range h.Elements {
		if !inspectable(e) || !focusable(e) {
			continue
		}
		if speakableText(h, e) == "" {
			out = append(out, finding(c.ID(), domain.ResultError, e, msg("speakable_text.missing")))
		}
	}
	return out, nil
}

// editableContentDesc flags editable items labelled by a content
// description instead of a hint.
type editableContentDesc struct{}

func (editableContentDesc) ID() string                { return "EditableContentDescCheck" }
func (editableContentDesc) Category() domain.Category { return domain.CategoryAccessibility }

func (c editableContentDesc) Run(h *domain.Hierarchy, _ domain.CheckParameters) ([]domain.RawFinding, error) {
	var out []domain.RawFinding
	for _, e := range h.Elements {
		if !e.Editable || !inspectable(e) {
			continue
		}
		if desc := strings.TrimSpace(e.ContentDescription); desc != "" {
			out = append(out, finding(c.ID(), domain.ResultError, e, msg("editable_desc.present", desc)))
		}
	}
	return out, nil
}

// duplicateSpeakableText flags items announcing the same text as others.
type duplicateSpeakableText struct{}

func (duplicateSpeakableText) ID() string                { return "DuplicateSpeakableTextCheck" }
func (duplicateSpeakableText) Category() domain.Category { return domain.CategoryAccessibility }

func (c duplicateSpeakableText) Run(h *domain.Hierarchy, _ domain.CheckParameters) ([]domain.RawFinding, error) {
	texts := make(map[*domain.Element]string)
	counts := make(map[string]int)
	for _, e := range h.Elements {
		if !inspectable(e) || !focusable(e) {
			continue
		}
		t := strings.ToLower(speakableText(h, e))
		if t == "" {
			continue
		}
		texts[e] = t
		counts[t]++
	}

	var out []domain.RawFinding
	for _, e := range h.Elements {
		t, ok := texts[e]
		if !ok || counts[t] < 2 {
			continue
		}
		typ := domain.ResultInfo
		if actionable(e) {
			typ = domain.ResultWarning
		}
		out = append(out, finding(c.ID(), typ, e, msg("duplicate_text.shared", speakableText(h, e), counts[t]-1)))
	}
	return out, nil
}

var roleWords = map[string]bool{
	"button": true, "image": true, "checkbox": true,
	"switch": true, "tab": true, "link": true, "icon": true,
}

// stateWords repeat the checked state announced for checkable items.
var stateWords = map[string]bool{
	"checked": true, "unchecked": true, "ticked": true, "unticked": true,
	"selected": true, "unselected": true,
}

var wordSplit = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// redundantDescription flags descriptions that repeat the item's role or,
// for checkable items, its checked state.
type redundantDescription struct{}

func (redundantDescription) ID() string                { return "RedundantDescriptionCheck" }
func (redundantDescription) Category() domain.Category { return domain.CategoryAccessibility }

func (c redundantDescription) Run(h *domain.Hierarchy, _ domain.CheckParameters) ([]domain.RawFinding, error) {
	var out []domain.RawFinding
	for _, e := range h.Elements {
		desc := strings.TrimSpace(e.ContentDescription)
		if desc == "" || !inspectable(e) {
			continue
		}
		role := roleWord(e.ClassName)
		for _, w := range wordSplit.Split(strings.ToLower(desc), -1) {
			if w == "" {
				continue
			}
			if roleWords[w] || (w == role && role != "view" && role != "layout") {
				out = append(out, finding(c.ID(), domain.ResultWarning, e, msg("redundant_desc.role", desc, w)))
				break
			}
			if e.Checkable && stateWords[w] {
				out = append(out, finding(c.ID(), domain.ResultWarning, e, msg("redundant_desc.state", desc, w)))
				break
			}
		}
	}
	return out, nil
}

var unclearLinkTexts = map[string]bool{
	"click here": true, "tap here": true, "here": true, "more": true,
	"read more": true, "learn more": true, "link": true, "click": true,
}

// linkPurposeUnclear flags actionable items whose text is a generic link
// phrase.
type linkPurposeUnclear struct{}

func (linkPurposeUnclear) ID() string                { return "LinkPurposeUnclearCheck" }
func (linkPurposeUnclear) Category() domain.Category { return domain.CategoryAccessibility }

func (c linkPurposeUnclear) Run(h *domain.Hierarchy, _ domain.CheckParameters) ([]domain.RawFinding, error) {
	var out []domain.RawFinding
	for _, e := range h.Elements {
		if !inspectable(e) || !actionable(e) {
			continue
		}
		text := ownText(e)
		norm := strings.Trim(strings.ToLower(text), " .!…")
		if unclearLinkTexts[norm] {
			out = append(out, finding(c.ID(), domain.ResultWarning, e, msg("link_purpose.unclear", text)))
		}
	}
	return out, nil
}

// className flags actionable items without a class name.
type className struct{}

func (className) ID() string                { return "ClassNameCheck" }
func (className) Category() domain.Category { return domain.CategoryAccessibility }

func (c className) Run(h *domain.Hierarchy, _ domain.CheckParameters) ([]domain.RawFinding, error) {
	var out []domain.RawFinding
	for _, e := range h.Elements {
		if inspectable(e) && actionable(e) && strings.TrimSpace(e.ClassName) == "" {
			out = append(out, finding(c.ID(), domain.ResultInfo, e, msg("class_name.missing")))
		}
	}
	return out, nil
}
