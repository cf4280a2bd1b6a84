package domain

// View is one node of a laid-out UI tree supplied by the host renderer.
// Implementations must be comparable (typically pointers) so they can key
// a NodeMap.
type View interface {
	Attached() bool
	Children() []View
	Attributes() ViewAttributes
}

// Rect is a screen rectangle in pixels. Right and Bottom are exclusive.
type Rect struct {
	Left   int `json:"left"   yaml:"left"`
	Top    int `json:"top"    yaml:"top"`
	Right  int `json:"right"  yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty reports whether r encloses no pixels.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Visibility mirrors the host framework's three visibility states.
type Visibility string

const (
	Visible   Visibility = "visible"
	Invisible Visibility = "invisible"
	Gone      Visibility = "gone"
)

// ViewAttributes is the subset of a view's state that checks inspect.
type ViewAttributes struct {
	ClassName          string     `json:"class_name"                    yaml:"class_name"`
	ResourceName       string     `json:"resource_name,omitempty"       yaml:"resource_name,omitempty"`
	Text               string     `json:"text,omitempty"                yaml:"text,omitempty"`
	ContentDescription string     `json:"content_description,omitempty" yaml:"content_description,omitempty"`
	Hint               string     `json:"hint,omitempty"                yaml:"hint,omitempty"`
	Bounds             Rect       `json:"bounds"                        yaml:"bounds"`
	Visibility         Visibility `json:"visibility,omitempty"          yaml:"visibility,omitempty"`
	Clickable          bool       `json:"clickable,omitempty"           yaml:"clickable,omitempty"`
	LongClickable      bool       `json:"long_clickable,omitempty"      yaml:"long_clickable,omitempty"`
	Focusable          bool       `json:"focusable,omitempty"           yaml:"focusable,omitempty"`
	Editable           bool       `json:"editable,omitempty"            yaml:"editable,omitempty"`
	Checkable          bool       `json:"checkable,omitempty"           yaml:"checkable,omitempty"`
	// ImportantForA11y defaults to true when unset.
	ImportantForA11y *bool   `json:"important_for_accessibility,omitempty" yaml:"important_for_accessibility,omitempty"`
	TextSizeSp       float64 `json:"text_size_sp,omitempty"               yaml:"text_size_sp,omitempty"`
	// Colors are ARGB; nil means not declared.
	TextColor       *uint32 `json:"text_color,omitempty"       yaml:"text_color,omitempty"`
	BackgroundColor *uint32 `json:"background_color,omitempty" yaml:"background_color,omitempty"`
}

// IsVisible reports whether the view is drawn.
func (a ViewAttributes) IsVisible() bool {
	return a.Visibility == "" || a.Visibility == Visible
}

// IsImportantForAccessibility reports whether assistive technology sees
// the view.
func (a ViewAttributes) IsImportantForAccessibility() bool {
	return a.ImportantForA11y == nil || *a.ImportantForA11y
}

// ViewNode is a plain View loaded from a layout dump.
type ViewNode struct {
	ViewAttributes `yaml:",inline"`

	// Detached marks a node whose tree was never attached to a window.
	Detached bool        `json:"detached,omitempty" yaml:"detached,omitempty"`
	Nodes    []*ViewNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *ViewNode) Attached() bool { return !n.Detached }

func (n *ViewNode) Attributes() ViewAttributes { return n.ViewAttributes }

func (n *ViewNode) Children() []View {
	if len(n.Nodes) == 0 {
		return nil
	}
	out := make([]View, len(n.Nodes))
	for i, c := range n.Nodes {
		if c == nil {
			continue
		}
		out[i] = c
	}
	return out
}
