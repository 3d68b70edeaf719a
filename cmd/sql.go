package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the pitch cache",
	Long: `Run an arbitrary SQL query against the pitch cache and print results as a table.

Schema overview:
  players(id, full_name, age, height, weight, bat_side, pitch_hand,
    position, team, number, fetched_at)
  batches(id TEXT, batter, player_name, start_date, end_date, pitches,
    fetched_at, payload BLOB)
  pitches(batch_id TEXT, game_pk, game_date, at_bat, pitch_num, batter,
    pitcher, pitcher_name, stand, p_throws, inning, half_inning, outs,
    balls, strikes, bat_score, fld_score, post_bat_score, on_1b, on_2b,
    on_3b, description, event, des, pitch_type, pitch_name,
    release_speed, plate_x, plate_z, has_location, home_team, away_team,
    xwoba, has_xwoba, woba_value, woba_denom)

Note: duplicate pitches may appear when cached batches overlap. Group by
(game_pk, at_bat, pitch_num) or query one batch_id to deduplicate.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
