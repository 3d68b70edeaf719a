package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/report"
	"github.com/pable/go-mlb-splits/internal/storage"
	"github.com/pable/go-mlb-splits/internal/zone"
)

// zone command flags.
var (
	zonePlayer string
	zoneStart  string
	zoneEnd    string
)

// zoneCmd renders the 3x3 strike-zone profile of a cached batter.
var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "3x3 strike-zone profile for a cached batter",
	Long: `Buckets every located pitch into a 3x3 grid over the strike zone and
prints pitch counts, swing rate, contact rate, and batting average per
cell, plus chase numbers for pitches outside the zone. The grid is
oriented from the catcher's view. Reads the cache only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkSpan(zoneStart, zoneEnd); err != nil {
			return err
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := resolveCachedPlayer(db, zonePlayer)
		if err != nil {
			return err
		}
		events, err := db.LoadPlayerEvents(p.ID, zoneStart, zoneEnd)
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		if len(events) == 0 {
			return fmt.Errorf("no cached pitches for batter %d; run 'mlbsplits fetch' first", p.ID)
		}

		z := zone.Build(events, cfg.Grid())
		fmt.Printf("\nZone profile: %s (%d)  –  catcher's view\n", p.FullName, p.ID)
		report.PrintZoneReport(os.Stdout, z)
		return nil
	},
}

func init() {
	zoneCmd.Flags().StringVar(&zonePlayer, "player", "", "MLBAM id or player name (required)")
	zoneCmd.Flags().StringVar(&zoneStart, "start", "", "first game date (YYYY-MM-DD)")
	zoneCmd.Flags().StringVar(&zoneEnd, "end", "", "last game date (YYYY-MM-DD)")
	_ = zoneCmd.MarkFlagRequired("player")
}
