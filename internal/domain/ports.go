package domain

// Locale is the fixed locale issue messages are resolved in.
const Locale = "en-US"

// ResultType is the classification a check gives a raw finding.
type ResultType string

const (
	ResultError      ResultType = "ERROR"
	ResultWarning    ResultType = "WARNING"
	ResultInfo       ResultType = "INFO"
	ResultNotRun     ResultType = "NOT_RUN"
	ResultSuppressed ResultType = "SUPPRESSED"
)

// Message is localizable finding text.
type Message interface {
	Localize(locale string) (string, error)
}

// Text is a Message that reads the same in every locale.
type Text string

func (t Text) Localize(string) (string, error) { return string(t), nil }

// RawFinding is the unfiltered output of one check.
type RawFinding struct {
	Type      ResultType
	CheckID   string
	ElementID *int
	Message   Message
}

// CheckParameters carries run inputs that checks may consult.
type CheckParameters struct {
	Screenshot                *Image
	Density                   float64 // pixels per dp
	MinTouchTargetDp          int
	MinContrastRatio          float64
	MinLargeTextContrastRatio float64
}

// DefaultCheckParameters returns thresholds matching platform guidance.
func DefaultCheckParameters() CheckParameters {
	return CheckParameters{
		Density:                   1.0,
		MinTouchTargetDp:          48,
		MinContrastRatio:          4.5,
		MinLargeTextContrastRatio: 3.0,
	}
}

// Check is a single rule run against a hierarchy.
type Check interface {
	ID() string
	Category() Category
	Run(h *Hierarchy, params CheckParameters) ([]RawFinding, error)
}

// CheckProvider resolves checks and their documentation.
type CheckProvider interface {
	// Resolve returns the checks named by ids, in that order, or the
	// "latest" preset when ids is empty.
	Resolve(ids []string) ([]Check, error)
	// HelpURL returns the documentation link for a check id.
	HelpURL(checkID string) (string, bool)
}

// LayoutLoader reads a laid-out view tree from a dump file.
type LayoutLoader interface {
	Load(path string) (*ViewNode, error)
}

// ScreenshotLoader decodes a rendered screenshot.
type ScreenshotLoader interface {
	Load(path string) (*Image, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// LayoutScanner finds layout dumps under a project directory.
type LayoutScanner interface {
	Scan(projectPath string, excludePaths ...string) ([]LayoutTarget, error)
}

// LayoutTarget is one layout dump and its optional screenshot, both
// relative to the project root.
type LayoutTarget struct {
	Layout     string `json:"layout"`
	Screenshot string `json:"screenshot,omitempty"`
}

// RunHistory persists a log of validation runs.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// ReportCache stores reports keyed by input content.
type ReportCache interface {
	Load(projectPath, key string) (*Report, error)
	Save(projectPath, key string, report *Report) error
}

// GitInfo provides version-control metadata.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// Level maps a result type onto an issue level. Types that ran without an
// actionable outcome (NOT_RUN, SUPPRESSED) collapse to verbose.
func (t ResultType) Level() Level {
	switch t {
	case ResultError:
		return LevelError
	case ResultWarning:
		return LevelWarning
	case ResultInfo:
		return LevelInfo
	default:
		return LevelVerbose
	}
}
