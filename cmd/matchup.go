package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/model"
	"github.com/pable/go-mlb-splits/internal/report"
	"github.com/pable/go-mlb-splits/internal/splits"
	"github.com/pable/go-mlb-splits/internal/storage"
)

// matchup command flags.
var (
	matchupPlayer  string
	matchupPitcher string
	matchupLimit   int
	matchupStart   string
	matchupEnd     string
)

// matchupCmd summarizes batter-versus-pitcher history from the cache.
var matchupCmd = &cobra.Command{
	Use:   "matchup",
	Short: "Batter vs pitcher history from the cache",
	Long: `Summarizes how a cached batter has fared against every pitcher faced.
With --pitcher the full pitch-by-pitch history of that matchup is
printed instead. Reads the cache only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkSpan(matchupStart, matchupEnd); err != nil {
			return err
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := resolveCachedPlayer(db, matchupPlayer)
		if err != nil {
			return err
		}
		an, err := loadAnalysis(db, p.ID, matchupStart, matchupEnd)
		if err != nil {
			return err
		}
		lines := splits.Matchups(an)
		if len(lines) == 0 {
			fmt.Println("No matchups in the cached span.")
			return nil
		}

		if matchupPitcher == "" {
			fmt.Printf("\n%s (%d) vs %d pitchers\n\n", p.FullName, p.ID, len(lines))
			report.PrintMatchupTable(os.Stdout, lines, matchupLimit)
			return nil
		}

		target, err := pickPitcher(lines, matchupPitcher)
		if err != nil {
			return err
		}
		abs := splits.MatchupDetail(an, target.Pitcher)
		report.PrintMatchupDetail(os.Stdout, target.PitcherName, abs)
		return nil
	},
}

func init() {
	matchupCmd.Flags().StringVar(&matchupPlayer, "player", "", "MLBAM id or player name (required)")
	matchupCmd.Flags().StringVar(&matchupPitcher, "pitcher", "", "pitcher id or name fragment for the detail view")
	matchupCmd.Flags().IntVar(&matchupLimit, "limit", 0, "only print the top N matchups by pitches seen")
	matchupCmd.Flags().StringVar(&matchupStart, "start", "", "first game date (YYYY-MM-DD)")
	matchupCmd.Flags().StringVar(&matchupEnd, "end", "", "last game date (YYYY-MM-DD)")
	_ = matchupCmd.MarkFlagRequired("player")
}

// pickPitcher finds the matchup line for a pitcher id or name fragment.
func pickPitcher(lines []model.MatchupLine, query string) (*model.MatchupLine, error) {
	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		for i := range lines {
			if lines[i].Pitcher == id {
				return &lines[i], nil
			}
		}
		return nil, fmt.Errorf("no matchup against pitcher %d in the cached span", id)
	}

	var hits []*model.MatchupLine
	for i := range lines {
		if strings.Contains(strings.ToLower(lines[i].PitcherName), strings.ToLower(query)) {
			hits = append(hits, &lines[i])
		}
	}
	switch len(hits) {
	case 0:
		return nil, fmt.Errorf("no matchup against %q in the cached span", query)
	case 1:
		return hits[0], nil
	default:
		fmt.Fprintf(os.Stderr, "%q matches %d pitchers; rerun with an id:\n", query, len(hits))
		for _, h := range hits {
			fmt.Fprintf(os.Stderr, "  %d  %s (%d pitches)\n", h.Pitcher, h.PitcherName, h.Pitches)
		}
		return nil, fmt.Errorf("ambiguous pitcher %q", query)
	}
}
