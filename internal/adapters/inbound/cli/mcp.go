package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/abdidvp/layoutcheck/internal/adapters/inbound/mcp"
)

func newMCPCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the layoutcheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(root))
	return cmd
}

func newMCPServeCmd(root *rootOptions) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start layoutcheck MCP server (stdio)",
		Long:  "Start the layoutcheck MCP server using stdio transport. This lets AI coding assistants validate layouts and adjust the policy.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectRoot(projectPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(root, absPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			mcpadapter.Version = version
			s := mcpadapter.NewLayoutcheckMCPServer(absPath, logger)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
