package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/layoutcheck/internal/application"
	"github.com/abdidvp/layoutcheck/internal/domain"
)

// policyView is the JSON shape of a Policy.
type policyView struct {
	Categories []domain.Category `json:"categories"`
	Levels     []domain.Level    `json:"levels"`
	Checks     []string          `json:"checks"`
}

func viewOf(p domain.Policy) policyView {
	return policyView{Categories: p.Categories(), Levels: p.Levels(), Checks: p.Checks()}
}

// registerTools registers all layoutcheck MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handler) {
	s.AddTool(
		mcplib.NewTool("layoutcheck_validate",
			mcplib.WithDescription("Validate one layout dump against the current policy and return the report as JSON"),
			mcplib.WithString("layout",
				mcplib.Required(),
				mcplib.Description("Layout dump path (.json, .yaml or .yml), relative to the project root"),
			),
			mcplib.WithString("screenshot",
				mcplib.Description("Optional PNG screenshot of the same screen, relative to the project root"),
			),
		),
		h.handleValidate,
	)

	s.AddTool(
		mcplib.NewTool("layoutcheck_validate_all",
			mcplib.WithDescription("Validate every layout dump in the project against the current policy"),
			mcplib.WithBoolean("errors_only", mcplib.Description("Only return reports that contain errors")),
		),
		h.handleValidateAll,
	)

	s.AddTool(
		mcplib.NewTool("layoutcheck_list_checks",
			mcplib.WithDescription("List the available checks with titles, aliases and help links"),
		),
		h.handleListChecks,
	)

	s.AddTool(
		mcplib.NewTool("layoutcheck_get_policy",
			mcplib.WithDescription("Return the policy validation tools currently use"),
		),
		h.handleGetPolicy,
	)

	s.AddTool(
		mcplib.NewTool("layoutcheck_set_policy",
			mcplib.WithDescription("Replace the current policy. Omitted fields keep their current value."),
			mcplib.WithString("categories", mcplib.Description("Comma-separated categories: accessibility, render, internal_error")),
			mcplib.WithString("levels", mcplib.Description("Comma-separated levels: error, warning, info, verbose")),
			mcplib.WithString("checks", mcplib.Description("Comma-separated check ids or aliases; \"latest\" restores the default preset")),
			mcplib.WithBoolean("reset", mcplib.Description("Restore the project's configured policy and ignore other fields")),
		),
		h.handleSetPolicy,
	)
}

func (h *handler) handleValidate(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	layoutPath, err := request.RequireString("layout")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	shot, _ := request.GetArguments()["screenshot"].(string)

	rep, err := h.svc.ValidateFile(h.projectPath, layoutPath, shot, application.OverridesFor(domain.CurrentPolicy()))
	if err != nil {
		return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
	}
	return jsonResult(rep)
}

func (h *handler) handleValidateAll(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	reports, err := h.svc.ValidateAll(h.projectPath, application.OverridesFor(domain.CurrentPolicy()))
	if err != nil {
		return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
	}
	if errorsOnly, _ := request.GetArguments()["errors_only"].(bool); errorsOnly {
		failing := make([]*domain.Report, 0, len(reports))
		for _, rep := range reports {
			if rep.HasErrors() {
				failing = append(failing, rep)
			}
		}
		reports = failing
	}
	return jsonResult(reports)
}

func (h *handler) handleListChecks(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	return jsonResult(h.provider.Catalog())
}

func (h *handler) handleGetPolicy(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	return jsonResult(viewOf(domain.CurrentPolicy()))
}

func (h *handler) handleSetPolicy(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	args := request.GetArguments()
	if reset, _ := args["reset"].(bool); reset {
		domain.ResetPolicy()
		h.installProjectPolicy()
		return jsonResult(viewOf(domain.CurrentPolicy()))
	}

	current := domain.CurrentPolicy()
	categories := current.Categories()
	if raw := splitAndTrim(stringArg(args, "categories")); len(raw) > 0 {
		categories = categories[:0:0]
		for _, s := range raw {
			c, err := domain.ParseCategory(s)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			categories = append(categories, c)
		}
	}

	levels := current.Levels()
	if raw := splitAndTrim(stringArg(args, "levels")); len(raw) > 0 {
		levels = levels[:0:0]
		for _, s := range raw {
			l, err := domain.ParseLevel(s)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			levels = append(levels, l)
		}
	}

	ids := current.Checks()
	if raw := splitAndTrim(stringArg(args, "checks")); len(raw) > 0 {
		ids = raw
		if len(raw) == 1 && strings.EqualFold(raw[0], "latest") {
			ids = nil
		}
	}
	if _, err := h.provider.Resolve(ids); err != nil {
		return errorResult(err.Error()), nil
	}

	p, err := domain.NewPolicy(categories, levels)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	p = p.WithChecks(ids...)
	domain.SetPolicy(p)
	h.logger.Infow("policy updated", "categories", p.Categories(), "levels", p.Levels(), "checks", p.Checks())
	return jsonResult(viewOf(p))
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v as indented JSON and returns it as a text result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
