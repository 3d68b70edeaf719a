package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/model"
	"github.com/pable/go-mlb-splits/internal/savant"
	"github.com/pable/go-mlb-splits/internal/storage"
)

// fetch command flags.
var (
	// fetchPlayer is the MLBAM id or name of the target batter.
	fetchPlayer string
	// fetchStart is the first game date of the span (YYYY-MM-DD).
	fetchStart string
	// fetchEnd is the last game date of the span (YYYY-MM-DD).
	fetchEnd string
	// fetchSeason fetches a whole season instead of an explicit span.
	fetchSeason int
	// fetchForce refetches chunks that are already cached.
	fetchForce bool
)

const dateLayout = "2006-01-02"

// fetchCmd is the cobra command for downloading Statcast pitch data.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download Statcast pitch data for a batter into the cache",
	Long: `Fetches pitch-by-pitch Statcast data for a batter from Baseball Savant
and stores it in the local cache. The span is split into short chunks so
no single Savant query hits its row cap; chunks already cached are
skipped unless --force is given.

Examples:
  # One month of Aaron Judge
  mlbsplits fetch --player "Aaron Judge" --start 2024-06-01 --end 2024-06-30

  # A full season by MLBAM id
  mlbsplits fetch --player 660271 --season 2024`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchPlayer, "player", "", "MLBAM id or player name (required)")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "first game date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "last game date (YYYY-MM-DD, default today)")
	fetchCmd.Flags().IntVar(&fetchSeason, "season", 0, "fetch a whole season (Mar 1 – Nov 30)")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "refetch chunks that are already cached")
	_ = fetchCmd.MarkFlagRequired("player")
}

// runFetch resolves flags and delegates to doFetch for the download loop.
func runFetch(cmd *cobra.Command, args []string) error {
	start, end, err := fetchSpan()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end %s is before start %s",
			end.Format(dateLayout), start.Format(dateLayout))
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	return doFetch(cmd.Context(), db, fetchPlayer, start, end, fetchForce)
}

// doFetch is the shared implementation for the fetch command.
func doFetch(ctx context.Context, db *storage.DB, playerQuery string, start, end time.Time, force bool) error {
	p, err := resolvePlayer(ctx, db, playerQuery)
	if err != nil {
		return err
	}
	log.Debug().Int64("batter", p.ID).Str("name", p.FullName).Msg("resolved player")

	cached, err := cachedSpans(db, p.ID)
	if err != nil {
		return err
	}

	client := savant.NewClient(cfg.FetchPerSec, cfg.BreakerFailures)
	chunks := savant.Chunks(start, end, cfg.FetchChunkDays)
	fmt.Printf("Fetching %s (%d): %s – %s in %d chunks\n",
		p.FullName, p.ID, start.Format(dateLayout), end.Format(dateLayout), len(chunks))

	var pitches, stored, skipped int
	for i, c := range chunks {
		from, to := c[0].Format(dateLayout), c[1].Format(dateLayout)
		fmt.Printf("[%d/%d] %s – %s ", i+1, len(chunks), from, to)

		if cached[from+"|"+to] && !force {
			fmt.Println("[skip]")
			skipped++
			continue
		}

		raw, err := client.FetchCSV(ctx, p.ID, c[0], c[1])
		if err != nil {
			fmt.Printf("[error] fetch: %v\n", err)
			continue
		}
		events, err := savant.DecodeCSV(bytes.NewReader(raw))
		if err != nil {
			fmt.Printf("[error] decode: %v\n", err)
			continue
		}

		batch := model.FetchBatch{
			ID:         uuid.NewString(),
			Batter:     p.ID,
			PlayerName: p.FullName,
			StartDate:  from,
			EndDate:    to,
			Pitches:    len(events),
			FetchedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := db.InsertBatch(batch, events, raw); err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}
		fmt.Printf("[ok] %d pitches\n", len(events))
		pitches += len(events)
		stored++
	}

	fmt.Printf("\nDone: %d pitches in %d batches (%d skipped)\n", pitches, stored, skipped)
	return nil
}

// fetchSpan resolves --season or --start/--end into concrete bounds.
func fetchSpan() (time.Time, time.Time, error) {
	var zero time.Time
	if fetchSeason != 0 {
		if fetchStart != "" || fetchEnd != "" {
			return zero, zero, fmt.Errorf("--season cannot be combined with --start/--end")
		}
		start := time.Date(fetchSeason, time.March, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(fetchSeason, time.November, 30, 0, 0, 0, 0, time.UTC)
		if today := time.Now().UTC().Truncate(24 * time.Hour); end.After(today) {
			end = today
		}
		return start, end, nil
	}

	if fetchStart == "" {
		return zero, zero, fmt.Errorf("either --season or --start is required")
	}
	start, err := time.Parse(dateLayout, fetchStart)
	if err != nil {
		return zero, zero, fmt.Errorf("invalid --start %q: want YYYY-MM-DD", fetchStart)
	}
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if fetchEnd != "" {
		end, err = time.Parse(dateLayout, fetchEnd)
		if err != nil {
			return zero, zero, fmt.Errorf("invalid --end %q: want YYYY-MM-DD", fetchEnd)
		}
	}
	return start, end, nil
}

// cachedSpans returns the "start|end" keys of every batch already stored
// for the batter.
func cachedSpans(db *storage.DB, batter int64) (map[string]bool, error) {
	batches, err := db.ListBatches()
	if err != nil {
		return nil, err
	}
	spans := make(map[string]bool, len(batches))
	for _, b := range batches {
		if b.Batter == batter {
			spans[b.StartDate+"|"+b.EndDate] = true
		}
	}
	return spans, nil
}
