package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/mlbstats"
	"github.com/pable/go-mlb-splits/internal/model"
	"github.com/pable/go-mlb-splits/internal/report"
	"github.com/pable/go-mlb-splits/internal/storage"
)

var bioRefresh bool

var bioCmd = &cobra.Command{
	Use:   "bio <player>",
	Short: "Show a player's bio (cached, fetched on miss)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		var p *model.Player
		if bioRefresh {
			p, err = refreshPlayer(ctx, db, args[0])
		} else {
			p, err = resolvePlayer(ctx, db, args[0])
		}
		if err != nil {
			return err
		}
		report.PrintPlayerBio(os.Stdout, p)
		return nil
	},
}

func init() {
	bioCmd.Flags().BoolVar(&bioRefresh, "refresh", false, "bypass the cache and refetch from the MLB Stats API")
}

// resolvePlayer turns a numeric MLBAM id or a name fragment into a player,
// preferring the local cache and falling back to the MLB Stats API.
func resolvePlayer(ctx context.Context, db *storage.DB, query string) (*model.Player, error) {
	if id, perr := strconv.ParseInt(query, 10, 64); perr == nil {
		if p, err := db.GetPlayer(id); err == nil && p != nil {
			return p, nil
		}
		return fetchAndCachePlayer(ctx, db, id)
	}

	if p, err := db.FindPlayerByName(query); err == nil && p != nil {
		return p, nil
	}

	api := mlbstats.NewClient()
	refs, err := api.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	refs = preferActive(refs)
	switch len(refs) {
	case 0:
		return nil, fmt.Errorf("no player matches %q", query)
	case 1:
		return fetchAndCachePlayer(ctx, db, refs[0].ID)
	default:
		fmt.Fprintf(os.Stderr, "%q matches %d players; rerun with an id:\n", query, len(refs))
		for _, r := range refs {
			fmt.Fprintf(os.Stderr, "  %d  %s (%s, %s)\n", r.ID, r.FullName, r.Position, r.Team)
		}
		return nil, fmt.Errorf("ambiguous player %q", query)
	}
}

// resolveCachedPlayer is resolvePlayer without the network fallback, for
// commands that only read the cache.
func resolveCachedPlayer(db *storage.DB, query string) (*model.Player, error) {
	if id, perr := strconv.ParseInt(query, 10, 64); perr == nil {
		p, err := db.GetPlayer(id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("player %d not in cache; run 'mlbsplits fetch --player %d' first", id, id)
		}
		return p, nil
	}
	p, err := db.FindPlayerByName(query)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("player %q not in cache; run 'mlbsplits fetch --player \"%s\"' first", query, query)
	}
	return p, nil
}

// refreshPlayer resolves the query to an id and refetches the bio even if cached.
func refreshPlayer(ctx context.Context, db *storage.DB, query string) (*model.Player, error) {
	if id, perr := strconv.ParseInt(query, 10, 64); perr == nil {
		return fetchAndCachePlayer(ctx, db, id)
	}
	p, err := resolvePlayer(ctx, db, query)
	if err != nil {
		return nil, err
	}
	return fetchAndCachePlayer(ctx, db, p.ID)
}

func fetchAndCachePlayer(ctx context.Context, db *storage.DB, id int64) (*model.Player, error) {
	p, err := mlbstats.NewClient().People(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup player %d: %w", id, err)
	}
	if err := db.UpsertPlayer(*p, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("cache player: %w", err)
	}
	return p, nil
}

// preferActive narrows a search result to active players when that
// leaves at least one candidate.
func preferActive(refs []model.PlayerRef) []model.PlayerRef {
	var active []model.PlayerRef
	for _, r := range refs {
		if r.Active {
			active = append(active, r)
		}
	}
	if len(active) > 0 {
		return active
	}
	return refs
}
