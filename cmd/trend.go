package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/report"
	"github.com/pable/go-mlb-splits/internal/splits"
	"github.com/pable/go-mlb-splits/internal/storage"
)

// trend command flags.
var (
	trendPlayer string
	trendWindow int
	trendTail   int
	trendStart  string
	trendEnd    string
)

// trendCmd renders the rolling xwOBA trend of a cached batter.
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Rolling xwOBA trend for a cached batter",
	Args:  cobra.NoArgs,
	RunE:  runTrend,
}

func init() {
	trendCmd.Flags().StringVar(&trendPlayer, "player", "", "MLBAM id or player name (required)")
	trendCmd.Flags().IntVar(&trendWindow, "window", 0, "rolling window in plate appearances (default from config)")
	trendCmd.Flags().IntVar(&trendTail, "tail", 0, "only print the last N window points")
	trendCmd.Flags().StringVar(&trendStart, "start", "", "first game date (YYYY-MM-DD)")
	trendCmd.Flags().StringVar(&trendEnd, "end", "", "last game date (YYYY-MM-DD)")
	_ = trendCmd.MarkFlagRequired("player")
}

func runTrend(cmd *cobra.Command, args []string) error {
	if err := checkSpan(trendStart, trendEnd); err != nil {
		return err
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := resolveCachedPlayer(db, trendPlayer)
	if err != nil {
		return err
	}
	an, err := loadAnalysis(db, p.ID, trendStart, trendEnd)
	if err != nil {
		return err
	}

	window := trendWindow
	if window <= 0 {
		window = cfg.TrendWindow
	}
	points := splits.Trend(an, window, cfg.TrendMin)
	report.PrintTrend(os.Stdout, points, window, cfg.LeagueXWOBA, trendTail)
	return nil
}
