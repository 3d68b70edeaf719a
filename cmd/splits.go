package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/model"
	"github.com/pable/go-mlb-splits/internal/normalize"
	"github.com/pable/go-mlb-splits/internal/report"
	"github.com/pable/go-mlb-splits/internal/splits"
	"github.com/pable/go-mlb-splits/internal/storage"
)

// splits command flags.
var (
	splitsPlayer string
	splitsDim    string
	splitsBucket string
	splitsStart  string
	splitsEnd    string
)

// splitsCmd computes situational splits from the cached pitches.
var splitsCmd = &cobra.Command{
	Use:   "splits",
	Short: "Situational splits for a cached batter",
	Long: `Computes situational splits from the cached pitches of a batter:
clutch, count, platoon, ballpark, home/away, inning, month, and
first-pitch outcomes. Without --dim every dimension is printed; with
--dim a single table; with --dim and --bucket the detail view of one
bucket. Reads the cache only.

Examples:
  mlbsplits splits --player "Aaron Judge"
  mlbsplits splits --player 660271 --dim clutch
  mlbsplits splits --player 660271 --dim ballpark --bucket SF --start 2024-04-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if splitsBucket != "" && splitsDim == "" {
			return fmt.Errorf("--bucket requires --dim")
		}
		if splitsDim != "" && !validDim(splitsDim) {
			return fmt.Errorf("unknown dimension %q; have: %s",
				splitsDim, strings.Join(splits.Dimensions(), ", "))
		}
		if err := checkSpan(splitsStart, splitsEnd); err != nil {
			return err
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := resolveCachedPlayer(db, splitsPlayer)
		if err != nil {
			return err
		}
		an, err := loadAnalysis(db, p.ID, splitsStart, splitsEnd)
		if err != nil {
			return err
		}
		set, err := splits.Aggregate(an)
		if err != nil {
			return err
		}

		if splitsBucket != "" {
			return printBucket(set, splitsDim, splitsBucket)
		}

		report.PrintSplitHeader(os.Stdout, p.FullName, p.ID, set.Total, splitsStart, splitsEnd)
		dims := splits.Dimensions()
		if splitsDim != "" {
			dims = []string{splitsDim}
		}
		for _, dim := range dims {
			lines := set.Dims[dim]
			if len(lines) == 0 {
				continue
			}
			fmt.Printf("--- %s ---\n", dim)
			report.PrintSplitTable(lines)
			fmt.Println()
		}
		report.PrintEstimateNote(os.Stdout, set.Total.ScoreIncomplete)
		if set.Unclassified > 0 {
			fmt.Printf("Unclassified PAs: %d\n", set.Unclassified)
		}
		return nil
	},
}

func init() {
	splitsCmd.Flags().StringVar(&splitsPlayer, "player", "", "MLBAM id or player name (required)")
	splitsCmd.Flags().StringVar(&splitsDim, "dim", "", "single dimension to print")
	splitsCmd.Flags().StringVar(&splitsBucket, "bucket", "", "single bucket within --dim")
	splitsCmd.Flags().StringVar(&splitsStart, "start", "", "first game date (YYYY-MM-DD)")
	splitsCmd.Flags().StringVar(&splitsEnd, "end", "", "last game date (YYYY-MM-DD)")
	_ = splitsCmd.MarkFlagRequired("player")
}

// printBucket renders the detail view of one bucket within a dimension.
func printBucket(set *model.SplitSet, dim, bucket string) error {
	for _, l := range set.Dims[dim] {
		if strings.EqualFold(l.Bucket, bucket) {
			report.PrintBucketDetail(os.Stdout, dim, l.Bucket, l.Stats)
			report.PrintEstimateNote(os.Stdout, l.Stats.ScoreIncomplete)
			return nil
		}
	}
	var have []string
	for _, l := range set.Dims[dim] {
		have = append(have, l.Bucket)
	}
	return fmt.Errorf("no bucket %q in %s; have: %s", bucket, dim, strings.Join(have, ", "))
}

func validDim(dim string) bool {
	for _, d := range splits.Dimensions() {
		if d == dim {
			return true
		}
	}
	return false
}

// loadAnalysis loads the cached pitches of a batter, constrained to the
// optional date span, and reconstructs plate appearances from them.
func loadAnalysis(db *storage.DB, batter int64, start, end string) (*model.Analysis, error) {
	events, err := db.LoadPlayerEvents(batter, start, end)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no cached pitches for batter %d; run 'mlbsplits fetch' first", batter)
	}
	an, err := normalize.Normalize(events, cfg.Engine())
	if err != nil {
		return nil, err
	}
	if an.Malformed > 0 {
		fmt.Fprintf(os.Stderr, "[warn] %d malformed rows ignored\n", an.Malformed)
	}
	return an, nil
}

// checkSpan validates optional YYYY-MM-DD bounds.
func checkSpan(start, end string) error {
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", d)
		}
	}
	return nil
}
