package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/config"
	"github.com/abdidvp/layoutcheck/internal/domain/checks"
)

func TestChecksCommand(t *testing.T) {
	out, err := execute(t, "checks")
	require.NoError(t, err)
	assert.Contains(t, out, "accessibility")
	assert.Contains(t, out, "touch_target_size")
}

func TestChecksCommand_JSON(t *testing.T) {
	out, err := execute(t, "checks", "--json")
	require.NoError(t, err)

	var infos []checks.Info
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	assert.Equal(t, checks.New().Catalog(), infos)
}

func TestTreeCommand(t *testing.T) {
	out, err := execute(t, "tree", "screens/login.layout.json", "--path", fixtureDir)
	require.NoError(t, err)
	assert.Contains(t, out, "View Hierarchy")
	assert.Contains(t, out, "4 elements")
	assert.Contains(t, out, "ImageButton/close #1")
	assert.Contains(t, out, `"Click here"`)
	assert.Contains(t, out, "✗2")
}

func TestTreeCommand_RequiresLayout(t *testing.T) {
	_, err := execute(t, "tree")
	assert.Error(t, err)
}

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	out, err := execute(t, "init", tmpDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created .layoutcheck.yaml")

	data, err := os.ReadFile(filepath.Join(tmpDir, ".layoutcheck.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "accessibility")
	assert.Contains(t, string(data), "min_dp: 48")

	cfg, err := config.New().Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"error", "warning"}, cfg.Policy.Levels)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".layoutcheck.yaml"), []byte("existing"), 0644))

	_, err := execute(t, "init", tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".layoutcheck.yaml"), []byte("old"), 0644))

	_, err := execute(t, "init", tmpDir, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tmpDir, ".layoutcheck.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "policy:")
	assert.NotEqual(t, "old", string(data))
}

func TestHistoryCommand_Empty(t *testing.T) {
	out, err := execute(t, "history", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No run history found.")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "layoutcheck dev")
}

func TestMCPCommandExists(t *testing.T) {
	_, err := execute(t, "mcp", "--help")
	assert.NoError(t, err)
}

func TestMCPServeCommandExists(t *testing.T) {
	_, err := execute(t, "mcp", "serve", "--help")
	assert.NoError(t, err)
}
