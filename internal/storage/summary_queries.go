package storage

import (
	"database/sql"
	"sort"
)

// Coverage summarizes the cached data for one batter.
type Coverage struct {
	Batter     int64
	PlayerName string
	Batches    int
	Pitches    int
	Games      int
	FirstDate  string
	LastDate   string
}

// CoverageByPlayer returns one Coverage row per cached batter, ordered by
// pitch count descending. Pitch and game counts are deduplicated across
// overlapping batches.
func (db *DB) CoverageByPlayer() ([]Coverage, error) {
	rows, err := db.conn.Query(`
		SELECT batter, MAX(player_name), COUNT(1)
		FROM batches
		GROUP BY batter`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byBatter := make(map[int64]*Coverage)
	for rows.Next() {
		var c Coverage
		if err := rows.Scan(&c.Batter, &c.PlayerName, &c.Batches); err != nil {
			return nil, err
		}
		byBatter[c.Batter] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The inner DISTINCT collapses duplicate pitches held by overlapping batches.
	prows, err := db.conn.Query(`
		SELECT batter, COUNT(1), COUNT(DISTINCT game_pk), MIN(game_date), MAX(game_date)
		FROM (SELECT DISTINCT batter, game_pk, game_date, at_bat, pitch_num FROM pitches)
		GROUP BY batter`)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var batter int64
		var pitches, games int
		var first, last string
		if err := prows.Scan(&batter, &pitches, &games, &first, &last); err != nil {
			return nil, err
		}
		c, ok := byBatter[batter]
		if !ok {
			c = &Coverage{Batter: batter}
			byBatter[batter] = c
		}
		c.Pitches = pitches
		c.Games = games
		c.FirstDate = first
		c.LastDate = last
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}

	out := make([]Coverage, 0, len(byBatter))
	for _, c := range byBatter {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pitches != out[j].Pitches {
			return out[i].Pitches > out[j].Pitches
		}
		return out[i].Batter < out[j].Batter
	})
	return out, nil
}

// QueryRaw runs an arbitrary SQL query and returns the column names plus
// every row rendered as strings. NULL renders as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
