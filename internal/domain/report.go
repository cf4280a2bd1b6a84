package domain

import "time"

// Report is the serializable projection of a Result.
type Report struct {
	Layout     string        `json:"layout"`
	Screenshot string        `json:"screenshot,omitempty"`
	Categories []Category    `json:"categories"`
	Levels     []Level       `json:"levels"`
	Checks     []string      `json:"checks,omitempty"`
	Issues     []Issue       `json:"issues"`
	Nodes      []NodeSummary `json:"nodes"`
	Metrics    Metrics       `json:"metrics"`
	Timestamp  time.Time     `json:"timestamp"`
	CommitHash string        `json:"commit_hash,omitempty"`
	Cached     bool          `json:"cached,omitempty"`
}

// NodeSummary identifies the view behind a node id.
type NodeSummary struct {
	ID           int    `json:"id"`
	ClassName    string `json:"class_name"`
	ResourceName string `json:"resource_name,omitempty"`
	Bounds       Rect   `json:"bounds"`
}

// NewReport projects r for output. Only nodes referenced by an issue are
// summarized.
func NewReport(layout string, policy Policy, r *Result) *Report {
	rep := &Report{
		Layout:     layout,
		Categories: policy.Categories(),
		Levels:     policy.Levels(),
		Checks:     policy.Checks(),
		Issues:     r.Issues(),
		Metrics:    r.Metrics(),
		Timestamp:  time.Now().UTC(),
	}
	if rep.Issues == nil {
		rep.Issues = []Issue{}
	}
	rep.Nodes = []NodeSummary{}

	nodes := r.Nodes()
	seen := make(map[int]bool)
	for _, issue := range rep.Issues {
		if issue.NodeID == nil || seen[*issue.NodeID] {
			continue
		}
		seen[*issue.NodeID] = true
		v, ok := nodes.View(*issue.NodeID)
		if !ok {
			continue
		}
		a := v.Attributes()
		rep.Nodes = append(rep.Nodes, NodeSummary{
			ID:           *issue.NodeID,
			ClassName:    a.ClassName,
			ResourceName: a.ResourceName,
			Bounds:       a.Bounds,
		})
	}
	return rep
}

// Count returns the number of issues at level l.
func (r *Report) Count(l Level) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Level == l {
			n++
		}
	}
	return n
}

// HasErrors reports whether any issue has level error.
func (r *Report) HasErrors() bool { return r.Count(LevelError) > 0 }

// Node returns the summary for a node id.
func (r *Report) Node(id int) (NodeSummary, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeSummary{}, false
}

// RunEntry is one line of run history.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Layout     string `json:"layout"`
	Errors     int    `json:"errors"`
	Warnings   int    `json:"warnings"`
	Infos      int    `json:"infos"`
	ElapsedMs  int64  `json:"elapsed_ms"`
}

// NewRunEntry summarizes rep for history.
func NewRunEntry(rep *Report) RunEntry {
	return RunEntry{
		Timestamp:  rep.Timestamp.Format(time.RFC3339),
		CommitHash: rep.CommitHash,
		Layout:     rep.Layout,
		Errors:     rep.Count(LevelError),
		Warnings:   rep.Count(LevelWarning),
		Infos:      rep.Count(LevelInfo),
		ElapsedMs:  rep.Metrics.ElapsedMs,
	}
}
