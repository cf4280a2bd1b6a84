package domain

import "time"

// Fix is a suggested remediation for an Issue.
type Fix struct {
	Description string `json:"description"`
}

// Issue is one normalized, policy-filtered finding.
type Issue struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Level    Level    `json:"level"`
	NodeID   *int     `json:"node_id,omitempty"`
	Fix      *Fix     `json:"fix,omitempty"`
	CheckID  string   `json:"check_id"`
	HelpURL  string   `json:"help_url,omitempty"`
}

// Metrics describes one validation run.
type Metrics struct {
	ErrorMessage     string `json:"error_message,omitempty"`
	ElapsedMs        int64  `json:"elapsed_ms"`
	ImageMemoryBytes int64  `json:"image_memory_bytes"`

	started time.Time
}

// StartTimer marks the beginning of the run.
func (m *Metrics) StartTimer() { m.started = time.Now() }

// EndTimer records the time since StartTimer.
func (m *Metrics) EndTimer() {
	if m.started.IsZero() {
		return
	}
	m.ElapsedMs = time.Since(m.started).Milliseconds()
}

// AddImageMemory charges n bytes of pixel copies to the run.
func (m *Metrics) AddImageMemory(n int64) {
	if n > 0 {
		m.ImageMemoryBytes += n
	}
}

// Result is the immutable outcome of a validation run.
type Result struct {
	nodes   *NodeMap
	issues  []Issue
	metrics Metrics
}

// Issues returns the issues in emission order.
func (r *Result) Issues() []Issue {
	return append([]Issue(nil), r.issues...)
}

// Nodes returns the id↔view map for this run.
func (r *Result) Nodes() *NodeMap { return r.nodes.clone() }

func (r *Result) Metrics() Metrics { return r.metrics }

// ResultBuilder accumulates a Result during a run.
type ResultBuilder struct {
	Nodes   *NodeMap
	Metrics Metrics
	issues  []Issue
}

func NewResultBuilder() *ResultBuilder {
	return &ResultBuilder{Nodes: NewNodeMap()}
}

// AddIssue appends issue in emission order.
func (b *ResultBuilder) AddIssue(issue Issue) {
	b.issues = append(b.issues, issue)
}

// Build freezes the accumulated state. The builder must not be reused.
func (b *ResultBuilder) Build() *Result {
	m := b.Metrics
	m.started = time.Time{}
	return &Result{
		nodes:   b.Nodes.clone(),
		issues:  append([]Issue(nil), b.issues...),
		metrics: m,
	}
}
