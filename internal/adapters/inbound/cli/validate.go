package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/cache"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/history"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/sarif"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/scanner"
	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/tui"
	"github.com/abdidvp/layoutcheck/internal/application"
	"github.com/abdidvp/layoutcheck/internal/domain"
)

type validateOptions struct {
	projectPath string
	all         bool
	screenshot  string
	jsonOutput  bool
	sarifOutput bool
	categories  []string
	levels      []string
	checks      []string
	ciMode      bool
	useCache    bool
	clearCache  bool
	noHistory   bool
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [layout]",
		Short: "Validate layout dumps against the accessibility policy",
		Long: "Validate one layout dump, or every dump under the project with --all. " +
			"A screenshot named like the dump (login.layout.json → login.png) is used automatically.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.all == (len(args) == 1) {
				return errors.New("specify either a layout path or --all")
			}
			if opts.jsonOutput && opts.sarifOutput {
				return errors.New("--json and --sarif are mutually exclusive")
			}

			absPath, err := projectRoot(opts.projectPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(root, absPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			store := cache.New()
			if opts.clearCache {
				if err := store.Clear(absPath); err != nil {
					return fmt.Errorf("clearing cache: %w", err)
				}
			}

			svc := newLayoutService(logger)
			if opts.useCache {
				svc.WithCache(store)
			}
			overrides := application.Overrides{
				Categories: opts.categories,
				Levels:     opts.levels,
				Checks:     opts.checks,
			}

			var reports []*domain.Report
			if opts.all {
				reports, err = svc.ValidateAll(absPath, overrides)
			} else {
				shot := opts.screenshot
				if shot == "" {
					shot = pairedScreenshot(absPath, args[0])
				}
				var rep *domain.Report
				rep, err = svc.ValidateFile(absPath, args[0], shot, overrides)
				reports = []*domain.Report{rep}
			}
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			if hash, err := gitinfo.New().CommitHash(absPath); err == nil {
				for _, rep := range reports {
					rep.CommitHash = hash
				}
			}

			if !opts.noHistory {
				hist := history.New()
				for _, rep := range reports {
					if err := hist.Save(absPath, domain.NewRunEntry(rep)); err != nil {
						logger.Warnw("saving run history failed", "error", err)
						break
					}
				}
			}

			switch {
			case opts.jsonOutput:
				if opts.all {
					err = renderJSON(cmd, reports)
				} else {
					err = renderJSON(cmd, reports[0])
				}
			case opts.sarifOutput:
				err = sarif.Write(cmd.OutOrStdout(), reports, "layoutcheck", version)
			default:
				for _, rep := range reports {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(rep))
				}
				if len(reports) > 1 {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(reports))
				}
			}
			if err != nil {
				return err
			}

			if opts.ciMode {
				failing := 0
				for _, rep := range reports {
					if rep.HasErrors() {
						failing++
					}
				}
				if failing > 0 {
					return fmt.Errorf("%d of %d layouts have accessibility errors", failing, len(reports))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.projectPath, "path", "", "Project path (defaults to current working directory)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Validate every layout dump under the project")
	cmd.Flags().StringVar(&opts.screenshot, "screenshot", "", "Screenshot PNG for the layout")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output reports as JSON")
	cmd.Flags().BoolVar(&opts.sarifOutput, "sarif", false, "Output reports as SARIF 2.1.0")
	cmd.Flags().StringSliceVar(&opts.categories, "categories", nil, "Override policy categories (accessibility, render, internal_error)")
	cmd.Flags().StringSliceVar(&opts.levels, "levels", nil, "Override policy levels (error, warning, info, verbose)")
	cmd.Flags().StringSliceVar(&opts.checks, "checks", nil, "Run only these checks (ids or aliases)")
	cmd.Flags().BoolVar(&opts.ciMode, "ci", false, "CI mode: exit 1 if any layout has errors")
	cmd.Flags().BoolVar(&opts.useCache, "cache", false, "Reuse reports for unchanged inputs")
	cmd.Flags().BoolVar(&opts.clearCache, "clear-cache", false, "Remove cached reports before validating")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this run in history")

	return cmd
}

// pairedScreenshot returns the PNG sitting next to a layout dump, or "".
func pairedScreenshot(projectPath, layoutPath string) string {
	stem, ok := scanner.LayoutStem(layoutPath)
	if !ok {
		return ""
	}
	shot := stem + ".png"
	abs := shot
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(projectPath, shot)
	}
	if _, err := os.Stat(abs); err != nil {
		return ""
	}
	return shot
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
