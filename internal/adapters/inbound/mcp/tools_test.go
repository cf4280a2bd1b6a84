package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/config"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/layout"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/scanner"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/screenshot"
	"github.com/abdidvp/layoutcheck/internal/application"
	"github.com/abdidvp/layoutcheck/internal/domain"
	"github.com/abdidvp/layoutcheck/internal/domain/checks"
)

const dialogLayout = `{
  "class_name": "android.widget.FrameLayout",
  "bounds": {"left": 0, "top": 0, "right": 400, "bottom": 400},
  "children": [
    {
      "class_name": "android.widget.ImageButton",
      "resource_name": "close",
      "clickable": true,
      "bounds": {"left": 0, "top": 0, "right": 40, "bottom": 40}
    },
    {
      "class_name": "android.widget.Button",
      "text": "Click here",
      "clickable": true,
      "bounds": {"left": 0, "top": 200, "right": 400, "bottom": 300}
    }
  ]
}`

const okLayout = `{
  "class_name": "android.widget.Button",
  "text": "Continue",
  "clickable": true,
  "bounds": {"left": 0, "top": 0, "right": 400, "bottom": 100}
}`

func newHandler(t *testing.T) *handler {
	t.Helper()
	t.Cleanup(domain.ResetPolicy)

	dir := t.TempDir()
	for name, data := range map[string]string{
		"dialog.layout.json": dialogLayout,
		"ok.layout.json":     okLayout,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
	}

	provider := checks.New()
	logger := zap.NewNop().Sugar()
	return &handler{
		projectPath: dir,
		provider:    provider,
		svc:         application.NewLayoutService(provider, layout.New(), screenshot.New(), scanner.New(), config.New(), logger),
		logger:      logger,
	}
}

func call(args map[string]any) mcplib.CallToolRequest {
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleValidate(t *testing.T) {
	h := newHandler(t)

	res, err := h.handleValidate(context.Background(), call(map[string]any{"layout": "dialog.layout.json"}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var rep domain.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rep))
	assert.Equal(t, "dialog.layout.json", rep.Layout)
	assert.True(t, rep.HasErrors())
}

func TestHandleValidate_UsesCurrentPolicy(t *testing.T) {
	h := newHandler(t)

	p, err := domain.NewPolicy([]domain.Category{domain.CategoryAccessibility}, []domain.Level{domain.LevelWarning})
	require.NoError(t, err)
	domain.SetPolicy(p)

	res, err := h.handleValidate(context.Background(), call(map[string]any{"layout": "dialog.layout.json"}))
	require.NoError(t, err)

	var rep domain.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rep))
	assert.Equal(t, []domain.Level{domain.LevelWarning}, rep.Levels)
	for _, issue := range rep.Issues {
		assert.Equal(t, domain.LevelWarning, issue.Level)
	}
}

func TestHandleValidate_MissingArgument(t *testing.T) {
	h := newHandler(t)

	res, err := h.handleValidate(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleValidate_MissingFile(t *testing.T) {
	h := newHandler(t)

	res, err := h.handleValidate(context.Background(), call(map[string]any{"layout": "nope.layout.json"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "validation failed")
}

func TestHandleValidateAll(t *testing.T) {
	h := newHandler(t)

	res, err := h.handleValidateAll(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	var all []domain.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &all))
	assert.Len(t, all, 2)

	res, err = h.handleValidateAll(context.Background(), call(map[string]any{"errors_only": true}))
	require.NoError(t, err)
	var failing []domain.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &failing))
	require.Len(t, failing, 1)
	assert.Equal(t, "dialog.layout.json", failing[0].Layout)
}

func TestHandleListChecks(t *testing.T) {
	h := newHandler(t)

	res, err := h.handleListChecks(context.Background(), call(nil))
	require.NoError(t, err)

	var infos []checks.Info
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &infos))
	assert.Len(t, infos, len(checks.New().Catalog()))
}

func TestHandleSetPolicy(t *testing.T) {
	h := newHandler(t)

	res, err := h.handleSetPolicy(context.Background(), call(map[string]any{
		"levels": "error, info",
		"checks": "touch_target_size",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	p := domain.CurrentPolicy()
	assert.Equal(t, []domain.Level{domain.LevelError, domain.LevelInfo}, p.Levels())
	assert.Equal(t, []string{"touch_target_size"}, p.Checks())
	assert.Equal(t, domain.DefaultPolicy().Categories(), p.Categories())

	res, err = h.handleGetPolicy(context.Background(), call(nil))
	require.NoError(t, err)
	var view policyView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &view))
	assert.Equal(t, []string{"touch_target_size"}, view.Checks)

	_, err = h.handleSetPolicy(context.Background(), call(map[string]any{"checks": "latest"}))
	require.NoError(t, err)
	assert.Empty(t, domain.CurrentPolicy().Checks())
	assert.Equal(t, []domain.Level{domain.LevelError, domain.LevelInfo}, domain.CurrentPolicy().Levels())
}

func TestHandleSetPolicy_RejectsInvalid(t *testing.T) {
	h := newHandler(t)
	before := domain.CurrentPolicy()

	for _, args := range []map[string]any{
		{"levels": "loud"},
		{"categories": "layout"},
		{"checks": "NoSuchCheck"},
	} {
		res, err := h.handleSetPolicy(context.Background(), call(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "args %v", args)
	}
	assert.Equal(t, before, domain.CurrentPolicy())
}

func TestHandleSetPolicy_ResetRestoresProjectConfig(t *testing.T) {
	h := newHandler(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.projectPath, ".layoutcheck.yaml"),
		[]byte("policy:\n  levels: [error]\n"), 0644))

	_, err := h.handleSetPolicy(context.Background(), call(map[string]any{"levels": "verbose"}))
	require.NoError(t, err)
	assert.Equal(t, []domain.Level{domain.LevelVerbose}, domain.CurrentPolicy().Levels())

	_, err = h.handleSetPolicy(context.Background(), call(map[string]any{"reset": true}))
	require.NoError(t, err)
	assert.Equal(t, []domain.Level{domain.LevelError}, domain.CurrentPolicy().Levels())
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a, ,b ,"))
	assert.Nil(t, splitAndTrim(""))
}
