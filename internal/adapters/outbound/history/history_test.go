package history_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/history"
	"github.com/abdidvp/layoutcheck/internal/domain"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.RunEntry{
		Timestamp:  "2026-02-25T10:00:00Z",
		CommitHash: "abc1234",
		Layout:     "login.layout.json",
		Errors:     2,
		Warnings:   1,
		ElapsedMs:  15,
	}
	require.NoError(t, h.Save(dir, entry))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
	assert.FileExists(t, filepath.Join(dir, ".layoutcheck", "history", "runs.json"))
}

func TestHistory_AppendsInOrder(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.RunEntry{Layout: "a", Errors: 3}))
	require.NoError(t, h.Save(dir, domain.RunEntry{Layout: "a", Errors: 1}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].Errors)
	assert.Equal(t, 1, entries[1].Errors)
}

func TestHistory_LoadEmpty(t *testing.T) {
	entries, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".layoutcheck", "history", "runs.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("not json"), 0644))

	_, err := history.New().Load(dir)
	assert.Error(t, err)
}

func TestHistory_CapsEntries(t *testing.T) {
	dir := t.TempDir()
	h := history.New()
	for i := 0; i < history.MaxEntries+3; i++ {
		require.NoError(t, h.Save(dir, domain.RunEntry{Layout: fmt.Sprintf("l%d", i)}))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, history.MaxEntries)
	assert.Equal(t, "l3", entries[0].Layout)
}
