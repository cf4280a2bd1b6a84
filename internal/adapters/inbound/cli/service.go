package cli

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/config"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/layout"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/scanner"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/screenshot"
	"github.com/abdidvp/layoutcheck/internal/application"
	"github.com/abdidvp/layoutcheck/internal/domain/checks"
	"github.com/abdidvp/layoutcheck/internal/logging"
)

// projectRoot resolves the --path flag.
func projectRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return absPath, nil
}

// newLogger builds the run's logger. Flags win over the project's logging
// section; an unreadable config is left for the service to report.
func newLogger(opts *rootOptions, projectPath string) (*zap.SugaredLogger, error) {
	level, format := opts.logLevel, opts.logFormat
	if cfg, err := config.New().Load(projectPath); err == nil {
		if level == "" {
			level = cfg.Logging.Level
		}
		if format == "" {
			format = cfg.Logging.Format
		}
	}
	return logging.New(level, format)
}

func newLayoutService(logger *zap.SugaredLogger) *application.LayoutService {
	return application.NewLayoutService(
		checks.New(),
		layout.New(),
		screenshot.New(),
		scanner.New(),
		config.New(),
		logger,
	)
}
