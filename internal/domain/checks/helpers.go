package checks

import (
	"strings"

	"github.com/abdidvp/layoutcheck/internal/domain"
	"github.com/fatih/camelcase"
)

func idOf(e *domain.Element) *int {
	id := e.ID
	return &id
}

func finding(id string, t domain.ResultType, e *domain.Element, m domain.Message) domain.RawFinding {
	return domain.RawFinding{Type: t, CheckID: id, ElementID: idOf(e), Message: m}
}

// inspectable reports whether assistive technology can reach e.
func inspectable(e *domain.Element) bool {
	return e.IsVisible() && e.IsImportantForAccessibility() && !e.Bounds.Empty()
}

func actionable(e *domain.Element) bool {
	return e.Clickable || e.LongClickable
}

func focusable(e *domain.Element) bool {
	return e.Focusable || actionable(e)
}

// ownText is the text a screen reader announces for e itself.
func ownText(e *domain.Element) string {
	if s := strings.TrimSpace(e.ContentDescription); s != "" {
		return s
	}
	if s := strings.TrimSpace(e.Text); s != "" {
		return s
	}
	if e.Editable {
		return strings.TrimSpace(e.Hint)
	}
	return ""
}

// speakableText is e's own text, or the text of visible descendants that
// are not focusable on their own.
func speakableText(h *domain.Hierarchy, e *domain.Element) string {
	if s := ownText(e); s != "" {
		return s
	}
	var parts []string
	for _, c := range h.Children(e) {
		if !c.IsVisible() || focusable(c) {
			continue
		}
		if s := speakableText(h, c); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// roleWord derives the role a screen reader announces from a class name:
// "android.widget.ImageButton" yields "button".
func roleWord(className string) string {
	simple := className
	if i := strings.LastIndexAny(simple, ".$"); i >= 0 {
		simple = simple[i+1:]
	}
	words := camelcase.Split(simple)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[len(words)-1])
}
