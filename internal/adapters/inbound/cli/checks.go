package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/layoutcheck/internal/adapters/outbound/tui"
	"github.com/abdidvp/layoutcheck/internal/domain/checks"
)

func newChecksCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List available checks",
		Long:  "List every registered check with its alias, category and help link. Both ids and aliases are accepted by --checks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := checks.New().Catalog()
			if jsonOutput {
				return renderJSON(cmd, catalog)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCatalog(catalog))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output checks as JSON")

	return cmd
}
