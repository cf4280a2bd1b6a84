package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

func TestNewPolicy_RejectsEmptySets(t *testing.T) {
	_, err := domain.NewPolicy(nil, []domain.Level{domain.LevelError})
	assert.ErrorIs(t, err, domain.ErrEmptyCategories)

	_, err = domain.NewPolicy([]domain.Category{domain.CategoryRender}, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyLevels)
}

func TestNewPolicy_Membership(t *testing.T) {
	p, err := domain.NewPolicy(
		[]domain.Category{domain.CategoryInternalError, domain.CategoryAccessibility},
		[]domain.Level{domain.LevelVerbose, domain.LevelError, domain.LevelError},
	)
	require.NoError(t, err)

	assert.True(t, p.HasCategory(domain.CategoryAccessibility))
	assert.False(t, p.HasCategory(domain.CategoryRender))
	assert.True(t, p.HasLevel(domain.LevelVerbose))
	assert.False(t, p.HasLevel(domain.LevelWarning))

	// Listings follow declaration order regardless of input order.
	assert.Equal(t, []domain.Category{domain.CategoryAccessibility, domain.CategoryInternalError}, p.Categories())
	assert.Equal(t, []domain.Level{domain.LevelError, domain.LevelVerbose}, p.Levels())
	assert.Empty(t, p.Checks())
}

func TestPolicy_WithChecksCopies(t *testing.T) {
	base := domain.DefaultPolicy()
	ids := []string{"TouchTargetSizeCheck"}
	narrowed := base.WithChecks(ids...)
	ids[0] = "mutated"

	assert.Empty(t, base.Checks())
	assert.Equal(t, []string{"TouchTargetSizeCheck"}, narrowed.Checks())
	assert.Equal(t, base.Levels(), narrowed.Levels())

	got := narrowed.Checks()
	got[0] = "mutated"
	assert.Equal(t, []string{"TouchTargetSizeCheck"}, narrowed.Checks())

	assert.Empty(t, narrowed.WithChecks().Checks())
}

func TestDefaultPolicy(t *testing.T) {
	p := domain.DefaultPolicy()
	assert.Equal(t, []domain.Category{domain.CategoryAccessibility, domain.CategoryRender}, p.Categories())
	assert.Equal(t, []domain.Level{domain.LevelError, domain.LevelWarning}, p.Levels())
}

func TestParseCategoryAndLevel(t *testing.T) {
	c, err := domain.ParseCategory("render")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryRender, c)

	_, err = domain.ParseCategory("Render")
	assert.ErrorContains(t, err, `unknown category "Render"`)

	l, err := domain.ParseLevel("verbose")
	require.NoError(t, err)
	assert.Equal(t, domain.LevelVerbose, l)

	_, err = domain.ParseLevel("fatal")
	assert.ErrorContains(t, err, `unknown level "fatal"`)
}

func TestCurrentPolicy_SetAndReset(t *testing.T) {
	t.Cleanup(domain.ResetPolicy)

	assert.Equal(t, domain.DefaultPolicy().Levels(), domain.CurrentPolicy().Levels())

	p, err := domain.NewPolicy([]domain.Category{domain.CategoryRender}, []domain.Level{domain.LevelInfo})
	require.NoError(t, err)
	domain.SetPolicy(p)

	got := domain.CurrentPolicy()
	assert.Equal(t, []domain.Category{domain.CategoryRender}, got.Categories())
	assert.Equal(t, []domain.Level{domain.LevelInfo}, got.Levels())

	domain.ResetPolicy()
	assert.Equal(t, domain.DefaultPolicy().Categories(), domain.CurrentPolicy().Categories())
}

func TestCurrentPolicy_ConcurrentAccess(t *testing.T) {
	t.Cleanup(domain.ResetPolicy)

	errOnly, err := domain.NewPolicy([]domain.Category{domain.CategoryAccessibility}, []domain.Level{domain.LevelError})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			domain.SetPolicy(errOnly)
			domain.ResetPolicy()
		}()
		go func() {
			defer wg.Done()
			p := domain.CurrentPolicy()
			// Every snapshot is one of the two complete policies.
			assert.True(t, p.HasCategory(domain.CategoryAccessibility))
			assert.True(t, p.HasLevel(domain.LevelError))
		}()
	}
	wg.Wait()
}
