package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/model"
	"github.com/pable/go-mlb-splits/internal/report"
	"github.com/pable/go-mlb-splits/internal/splits"
	"github.com/pable/go-mlb-splits/internal/storage"
)

// gamelog command flags.
var (
	gamelogPlayer string
	gamelogStart  string
	gamelogEnd    string
)

// gamelogCmd prints per-game totals for a cached batter.
var gamelogCmd = &cobra.Command{
	Use:   "gamelog",
	Short: "Per-game totals for a cached batter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkSpan(gamelogStart, gamelogEnd); err != nil {
			return err
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := resolveCachedPlayer(db, gamelogPlayer)
		if err != nil {
			return err
		}
		an, err := loadAnalysis(db, p.ID, gamelogStart, gamelogEnd)
		if err != nil {
			return err
		}
		lines := splits.GameLog(an)

		fmt.Printf("\nGame log: %s (%d)  –  %d games\n\n", p.FullName, p.ID, len(lines))
		report.PrintGameLog(os.Stdout, lines)
		report.PrintEstimateNote(os.Stdout, totalIncomplete(lines))
		return nil
	},
}

func init() {
	gamelogCmd.Flags().StringVar(&gamelogPlayer, "player", "", "MLBAM id or player name (required)")
	gamelogCmd.Flags().StringVar(&gamelogStart, "start", "", "first game date (YYYY-MM-DD)")
	gamelogCmd.Flags().StringVar(&gamelogEnd, "end", "", "last game date (YYYY-MM-DD)")
	_ = gamelogCmd.MarkFlagRequired("player")
}

func totalIncomplete(lines []model.GameLine) int {
	var n int
	for _, g := range lines {
		n += g.Stats.ScoreIncomplete
	}
	return n
}
