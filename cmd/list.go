package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cached fetch batches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	batches, err := db.ListBatches()
	if err != nil {
		return fmt.Errorf("list batches: %w", err)
	}
	if len(batches) == 0 {
		fmt.Fprintln(os.Stdout, "No batches cached yet. Run 'mlbsplits fetch --player <id|name>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-22s  %-8s  %-10s  %-10s  %7s  %s\n",
		"BATCH", "PLAYER", "BATTER", "START", "END", "PITCHES", "FETCHED")
	fmt.Fprintf(os.Stdout, "%-10s  %-22s  %-8s  %-10s  %-10s  %7s  %s\n",
		"──────────", "──────────────────────", "────────", "──────────", "──────────", "───────", "───────")
	for _, b := range batches {
		fmt.Fprintf(os.Stdout, "%-10s  %-22s  %-8d  %-10s  %-10s  %7d  %s\n",
			b.ID[:8], b.PlayerName, b.Batter, b.StartDate, b.EndDate, b.Pitches, b.FetchedAt)
	}
	return nil
}
