package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/revset"
)

func RevsetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revsets",
		Short: "Print the revset language reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, cat := range revset.Reference() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, cat.Name)
				for _, e := range cat.Entries {
					fmt.Fprintf(out, "  %-24s %s\n", e.Name, e.Description)
				}
			}
			return nil
		},
	}
}
