package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/revset"
)

func PresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Print the canned revset filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range revset.Presets() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", p.Expr, p.Description)
			}
			return nil
		},
	}
}
