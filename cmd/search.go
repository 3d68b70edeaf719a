package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/mlbstats"
	"github.com/pable/go-mlb-splits/internal/report"
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search MLB players by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		refs, err := mlbstats.NewClient().Search(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("search %q: %w", args[0], err)
		}
		if len(refs) == 0 {
			fmt.Printf("No players match %q.\n", args[0])
			return nil
		}
		report.PrintSearchResults(os.Stdout, refs)
		return nil
	},
}
