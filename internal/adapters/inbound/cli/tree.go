package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/tui"
	"github.com/abdidvp/layoutcheck/internal/application"
)

func newTreeCmd(root *rootOptions) *cobra.Command {
	var (
		projectPath string
		screenshot  string
	)

	cmd := &cobra.Command{
		Use:   "tree <layout>",
		Short: "Show the view hierarchy with issue markers",
		Long:  "Print the view hierarchy of a layout dump with element ids, marking each element with the issues validation found on it.",
		Args:  cobra.ExactArgs(1),
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

			svc := newLayoutService(logger)
			h, err := svc.Hierarchy(absPath, args[0])
			if err != nil {
				return err
			}

			shot := screenshot
			if shot == "" {
				shot = pairedScreenshot(absPath, args[0])
			}
			rep, err := svc.ValidateFile(absPath, args[0], shot, application.Overrides{})
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderTree(h, rep))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")
	cmd.Flags().StringVar(&screenshot, "screenshot", "", "Screenshot PNG for the layout")

	return cmd
}
