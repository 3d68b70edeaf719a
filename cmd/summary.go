package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/storage"
)

// summaryCmd is the cobra command for displaying a high-level cache overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the cache",
	Long: `Display aggregate statistics about the cached Statcast data: batters
covered, batch and pitch counts, and the date span per batter.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cov, err := db.CoverageByPlayer()
	if err != nil {
		return fmt.Errorf("get coverage: %w", err)
	}
	if len(cov) == 0 {
		fmt.Fprintln(os.Stdout, "No batches cached yet. Run 'mlbsplits fetch --player <id|name>' to add one.")
		return nil
	}

	var batches, pitches int
	first, last := cov[0].FirstDate, cov[0].LastDate
	for _, c := range cov {
		batches += c.Batches
		pitches += c.Pitches
		if c.FirstDate != "" && (first == "" || c.FirstDate < first) {
			first = c.FirstDate
		}
		if c.LastDate > last {
			last = c.LastDate
		}
	}

	fmt.Fprintf(os.Stdout, "\n=== Cache Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Batters cached : %d\n", len(cov))
	fmt.Fprintf(os.Stdout, "  Fetch batches  : %d\n", batches)
	fmt.Fprintf(os.Stdout, "  Pitches stored : %d\n", pitches)
	fmt.Fprintf(os.Stdout, "  Date range     : %s → %s\n", first, last)

	fmt.Fprintf(os.Stdout, "\n--- Batters ---\n\n")
	bt := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	bt.Header("BATTER", "ID", "BATCHES", "PITCHES", "GAMES", "FIRST", "LAST")
	for _, c := range cov {
		bt.Append(
			c.PlayerName,
			fmt.Sprintf("%d", c.Batter),
			fmt.Sprintf("%d", c.Batches),
			fmt.Sprintf("%d", c.Pitches),
			fmt.Sprintf("%d", c.Games),
			c.FirstDate,
			c.LastDate,
		)
	}
	bt.Render()

	return nil
}
