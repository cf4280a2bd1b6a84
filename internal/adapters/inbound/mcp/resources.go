package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

// registerResources registers all layoutcheck MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handler) {
	s.AddResource(
		mcplib.NewResource(
			"layoutcheck://checks",
			"Check Catalog",
			mcplib.WithResourceDescription("Every registered check with its category and help link"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			return jsonResource("layoutcheck://checks", h.provider.Catalog())
		},
	)

	s.AddResource(
		mcplib.NewResource(
			"layoutcheck://policy",
			"Current Policy",
			mcplib.WithResourceDescription("Categories, levels and checks used by validation tools"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			return jsonResource("layoutcheck://policy", viewOf(domain.CurrentPolicy()))
		},
	)
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
