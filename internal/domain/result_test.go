package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

func TestResultBuilder_FreezesState(t *testing.T) {
	b := domain.NewResultBuilder()
	view := named("Root")
	require.NoError(t, b.Nodes.Put(0, view))
	b.AddIssue(domain.Issue{Message: "first"})
	b.AddIssue(domain.Issue{Message: "second"})
	b.Metrics.AddImageMemory(64)
	b.Metrics.AddImageMemory(-10)

	r := b.Build()

	// Later builder changes do not leak into the result.
	b.AddIssue(domain.Issue{Message: "late"})
	require.NoError(t, b.Nodes.Put(1, named("Late")))

	issues := r.Issues()
	require.Len(t, issues, 2)
	assert.Equal(t, "first", issues[0].Message)
	assert.Equal(t, "second", issues[1].Message)
	assert.Equal(t, 1, r.Nodes().Len())
	assert.Equal(t, int64(64), r.Metrics().ImageMemoryBytes)

	// Accessors return copies.
	issues[0].Message = "changed"
	assert.Equal(t, "first", r.Issues()[0].Message)
	require.NoError(t, r.Nodes().Put(5, named("Other")))
	assert.Equal(t, 1, r.Nodes().Len())
}

func TestResultBuilder_EmptyResult(t *testing.T) {
	r := domain.NewResultBuilder().Build()
	assert.Empty(t, r.Issues())
	assert.Equal(t, 0, r.Nodes().Len())
	assert.Equal(t, domain.Metrics{}, r.Metrics())
}
