package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

func intPtr(i int) *int { return &i }

func sampleResult(t *testing.T) *domain.Result {
	t.Helper()
	b := domain.NewResultBuilder()
	tree := named("android.widget.FrameLayout", named("android.widget.Button"), named("android.widget.TextView"))
	tree.Nodes[0].ResourceName = "ok"
	_, err := domain.BuildHierarchy(tree, b.Nodes)
	require.NoError(t, err)

	b.AddIssue(domain.Issue{Category: domain.CategoryAccessibility, Level: domain.LevelError, NodeID: intPtr(1), CheckID: "A"})
	b.AddIssue(domain.Issue{Category: domain.CategoryAccessibility, Level: domain.LevelWarning, NodeID: intPtr(1), CheckID: "B"})
	b.AddIssue(domain.Issue{Category: domain.CategoryAccessibility, Level: domain.LevelInfo, NodeID: intPtr(2), CheckID: "C"})
	b.AddIssue(domain.Issue{Category: domain.CategoryInternalError, Level: domain.LevelError, CheckID: "D"})
	b.Metrics.ElapsedMs = 7
	return b.Build()
}

func TestNewReport(t *testing.T) {
	p := domain.DefaultPolicy().WithChecks("A", "B")
	rep := domain.NewReport("login.layout.json", p, sampleResult(t))

	assert.Equal(t, "login.layout.json", rep.Layout)
	assert.Equal(t, p.Categories(), rep.Categories)
	assert.Equal(t, p.Levels(), rep.Levels)
	assert.Equal(t, []string{"A", "B"}, rep.Checks)
	assert.Len(t, rep.Issues, 4)
	assert.Equal(t, int64(7), rep.Metrics.ElapsedMs)
	assert.WithinDuration(t, time.Now(), rep.Timestamp, time.Minute)

	// Only referenced nodes are summarized, once each.
	require.Len(t, rep.Nodes, 2)
	n, ok := rep.Node(1)
	require.True(t, ok)
	assert.Equal(t, "android.widget.Button", n.ClassName)
	assert.Equal(t, "ok", n.ResourceName)
	_, ok = rep.Node(0)
	assert.False(t, ok)
}

func TestNewReport_EmptyResult(t *testing.T) {
	rep := domain.NewReport("a", domain.DefaultPolicy(), domain.NewResultBuilder().Build())
	assert.NotNil(t, rep.Issues)
	assert.NotNil(t, rep.Nodes)
	assert.False(t, rep.HasErrors())
}

func TestReport_Counts(t *testing.T) {
	rep := domain.NewReport("a", domain.DefaultPolicy(), sampleResult(t))
	assert.Equal(t, 2, rep.Count(domain.LevelError))
	assert.Equal(t, 1, rep.Count(domain.LevelWarning))
	assert.Equal(t, 1, rep.Count(domain.LevelInfo))
	assert.True(t, rep.HasErrors())
}

func TestNewRunEntry(t *testing.T) {
	rep := domain.NewReport("a.layout.json", domain.DefaultPolicy(), sampleResult(t))
	rep.CommitHash = "abc"
	rep.Timestamp = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	e := domain.NewRunEntry(rep)
	assert.Equal(t, "2026-03-01T12:00:00Z", e.Timestamp)
	assert.Equal(t, "abc", e.CommitHash)
	assert.Equal(t, "a.layout.json", e.Layout)
	assert.Equal(t, 2, e.Errors)
	assert.Equal(t, 1, e.Warnings)
	assert.Equal(t, 1, e.Infos)
	assert.Equal(t, int64(7), e.ElapsedMs)
}
