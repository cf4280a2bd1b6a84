package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/config"
	"github.com/abdidvp/layoutcheck/internal/domain"
)

const configHeader = "# layoutcheck configuration\n# Empty policy lists fall back to the built-in defaults.\n\n"

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .layoutcheck.yaml configuration file",
		Long:  "Create a .layoutcheck.yaml spelling out the default policy and thresholds.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := projectRoot(path)
			if err != nil {
				return err
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			content, err := config.Render(starterConfig())
			if err != nil {
				return fmt.Errorf("rendering config: %w", err)
			}

			if err := os.WriteFile(dest, append([]byte(configHeader), content...), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .layoutcheck.yaml")

	return cmd
}

// starterConfig spells out the defaults so they are easy to edit.
func starterConfig() domain.ProjectConfig {
	policy := domain.DefaultPolicy()
	params := domain.DefaultCheckParameters()

	cfg := domain.DefaultConfig()
	for _, c := range policy.Categories() {
		cfg.Policy.Categories = append(cfg.Policy.Categories, string(c))
	}
	for _, l := range policy.Levels() {
		cfg.Policy.Levels = append(cfg.Policy.Levels, string(l))
	}
	cfg.TouchTarget.MinDp = params.MinTouchTargetDp
	cfg.TouchTarget.Density = params.Density
	cfg.Contrast.MinRatio = params.MinContrastRatio
	cfg.Contrast.MinLargeTextRatio = params.MinLargeTextContrastRatio
	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "console"
	return cfg
}
