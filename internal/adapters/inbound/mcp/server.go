package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/config"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/layout"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/scanner"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/screenshot"
	"github.com/abdidvp/layoutcheck/internal/application"
	"github.com/abdidvp/layoutcheck/internal/domain"
	"github.com/abdidvp/layoutcheck/internal/domain/checks"
)

// Version is reported to MCP clients.
var Version = "dev"

// handler bundles what tool and resource handlers share.
type handler struct {
	projectPath string
	provider    *checks.Provider
	svc         *application.LayoutService
	logger      *zap.SugaredLogger
}

// NewLayoutcheckMCPServer creates an MCP server with all layoutcheck tools
// and resources registered. The project's configured policy is installed
// as the process-wide policy that validation tools use.
func NewLayoutcheckMCPServer(projectPath string, logger *zap.SugaredLogger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	provider := checks.New()
	h := &handler{
		projectPath: projectPath,
		provider:    provider,
		svc: application.NewLayoutService(
			provider,
			layout.New(),
			screenshot.New(),
			scanner.New(),
			config.New(),
			logger,
		),
		logger: logger,
	}
	h.installProjectPolicy()

	s := server.NewMCPServer(
		"layoutcheck",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, h)
	registerResources(s, h)

	return s
}

// installProjectPolicy makes the project's configured policy current. An
// unreadable config keeps whatever policy is installed.
func (h *handler) installProjectPolicy() {
	p, err := h.svc.Policy(h.projectPath, application.Overrides{})
	if err != nil {
		h.logger.Warnw("project policy not loaded, keeping current policy", "error", err)
		return
	}
	domain.SetPolicy(p)
}
