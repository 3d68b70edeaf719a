package storage

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-mlb-splits/internal/model"
)

// pitchColumns is the SELECT list shared by the pitch loaders. Order must
// match scanPitch.
const pitchColumns = `game_pk, game_date, at_bat, pitch_num, batter, pitcher, pitcher_name,
	stand, p_throws, inning, half_inning, outs, balls, strikes,
	bat_score, fld_score, post_bat_score, on_1b, on_2b, on_3b,
	description, event, des, pitch_type, pitch_name,
	release_speed, plate_x, plate_z, has_location,
	home_team, away_team, xwoba, has_xwoba, woba_value, woba_denom`

// UpsertPlayer stores or refreshes a player bio. Uses INSERT OR REPLACE for idempotency.
func (db *DB) UpsertPlayer(p model.Player, fetchedAt string) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO players(id, full_name, age, height, weight, bat_side, pitch_hand, position, team, number, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FullName, p.Age, p.Height, p.Weight,
		p.BatSide, p.PitchHand, p.Position, p.Team, p.Number,
		fetchedAt,
	)
	return err
}

// GetPlayer returns the cached bio for a player ID, or nil when not cached.
func (db *DB) GetPlayer(id int64) (*model.Player, error) {
	var p model.Player
	err := db.conn.QueryRow(`
		SELECT id, full_name, age, height, weight, bat_side, pitch_hand, position, team, number
		FROM players WHERE id = ?`, id).
		Scan(&p.ID, &p.FullName, &p.Age, &p.Height, &p.Weight,
			&p.BatSide, &p.PitchHand, &p.Position, &p.Team, &p.Number)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPlayerByName finds the first cached player whose name contains the
// given fragment, case-insensitively. Returns nil when nothing matches.
func (db *DB) FindPlayerByName(name string) (*model.Player, error) {
	var p model.Player
	err := db.conn.QueryRow(`
		SELECT id, full_name, age, height, weight, bat_side, pitch_hand, position, team, number
		FROM players WHERE full_name LIKE ? COLLATE NOCASE LIMIT 1`, "%"+name+"%").
		Scan(&p.ID, &p.FullName, &p.Age, &p.Height, &p.Weight,
			&p.BatSide, &p.PitchHand, &p.Position, &p.Team, &p.Number)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// InsertBatch stores one fetch batch and its decoded pitches in a single
// transaction. The raw CSV payload is zstd-compressed so export can
// reproduce exactly what Statcast served.
func (db *DB) InsertBatch(batch model.FetchBatch, events []model.PitchEvent, payload []byte) error {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("zstd: %w", err)
	}
	compressed := enc.EncodeAll(payload, nil)
	enc.Close()

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO batches(id, batter, player_name, start_date, end_date, pitches, fetched_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		batch.ID, batch.Batter, batch.PlayerName,
		batch.StartDate, batch.EndDate, batch.Pitches, batch.FetchedAt,
		compressed,
	)
	if err != nil {
		return fmt.Errorf("insert batch %s: %w", batch.ID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO pitches(
			batch_id, game_pk, game_date, at_bat, pitch_num, batter, pitcher, pitcher_name,
			stand, p_throws, inning, half_inning, outs, balls, strikes,
			bat_score, fld_score, post_bat_score, on_1b, on_2b, on_3b,
			description, event, des, pitch_type, pitch_name,
			release_speed, plate_x, plate_z, has_location,
			home_team, away_team, xwoba, has_xwoba, woba_value, woba_denom
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		_, err = stmt.Exec(
			batch.ID, e.GamePK, e.GameDate, e.AtBat, e.PitchNum, e.Batter, e.Pitcher, e.PitcherName,
			e.Stand, e.PThrows, e.Inning, e.HalfInning, e.Outs, e.Balls, e.Strikes,
			e.BatScore, e.FldScore, e.PostBatScore,
			boolInt(e.On1B), boolInt(e.On2B), boolInt(e.On3B),
			e.Description, e.Event, e.Des, e.PitchType, e.PitchName,
			e.ReleaseSpeed, e.PlateX, e.PlateZ, boolInt(e.HasLocation),
			e.HomeTeam, e.AwayTeam, e.XWOBA, boolInt(e.HasXWOBA), e.WOBAValue, e.WOBADenom,
		)
		if err != nil {
			return fmt.Errorf("insert pitch %d/%d/%d: %w", e.GamePK, e.AtBat, e.PitchNum, err)
		}
	}
	return tx.Commit()
}

// ListBatches returns all stored fetch batches ordered by fetched_at desc.
func (db *DB) ListBatches() ([]model.FetchBatch, error) {
	rows, err := db.conn.Query(`
		SELECT id, batter, player_name, start_date, end_date, pitches, fetched_at
		FROM batches ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FetchBatch
	for rows.Next() {
		var b model.FetchBatch
		if err := rows.Scan(&b.ID, &b.Batter, &b.PlayerName,
			&b.StartDate, &b.EndDate, &b.Pitches, &b.FetchedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetBatchByPrefix finds the first batch whose id starts with the given prefix.
func (db *DB) GetBatchByPrefix(prefix string) (*model.FetchBatch, error) {
	var b model.FetchBatch
	err := db.conn.QueryRow(`
		SELECT id, batter, player_name, start_date, end_date, pitches, fetched_at
		FROM batches WHERE id LIKE ? LIMIT 1`, prefix+"%").
		Scan(&b.ID, &b.Batter, &b.PlayerName,
			&b.StartDate, &b.EndDate, &b.Pitches, &b.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// LoadBatchEvents returns the decoded pitches of one batch in game order.
func (db *DB) LoadBatchEvents(batchID string) ([]model.PitchEvent, error) {
	rows, err := db.conn.Query(`
		SELECT `+pitchColumns+`
		FROM pitches WHERE batch_id = ?
		ORDER BY game_date, game_pk, at_bat, pitch_num`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PitchEvent
	for rows.Next() {
		e, err := scanPitch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LoadPlayerEvents returns all cached pitches for a batter, optionally
// bounded by start/end dates (inclusive, YYYY-MM-DD; empty means unbounded).
// Overlapping fetch batches can hold the same pitch, so rows are
// deduplicated on (game_pk, at_bat, pitch_num).
func (db *DB) LoadPlayerEvents(batter int64, start, end string) ([]model.PitchEvent, error) {
	query := `SELECT ` + pitchColumns + ` FROM pitches WHERE batter = ?`
	args := []interface{}{batter}
	if start != "" {
		query += ` AND game_date >= ?`
		args = append(args, start)
	}
	if end != "" {
		query += ` AND game_date <= ?`
		args = append(args, end)
	}
	query += ` ORDER BY game_date, game_pk, at_bat, pitch_num`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type pitchKey struct {
		game  int64
		atBat int
		pitch int
	}
	seen := make(map[pitchKey]bool)
	var out []model.PitchEvent
	for rows.Next() {
		e, err := scanPitch(rows)
		if err != nil {
			return nil, err
		}
		k := pitchKey{e.GamePK, e.AtBat, e.PitchNum}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteBatch removes a batch and its pitches.
func (db *DB) DeleteBatch(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM pitches WHERE batch_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM batches WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// GetBatchPayload returns the decompressed raw CSV payload of a batch.
func (db *DB) GetBatchPayload(id string) ([]byte, error) {
	var compressed []byte
	err := db.conn.QueryRow(`SELECT payload FROM batches WHERE id = ?`, id).Scan(&compressed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("batch %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	defer dec.Close()
	return dec.DecodeAll(compressed, nil)
}

// scanPitch scans one row selected with pitchColumns.
func scanPitch(rows *sql.Rows) (model.PitchEvent, error) {
	var e model.PitchEvent
	var on1, on2, on3, hasLoc, hasX int
	err := rows.Scan(
		&e.GamePK, &e.GameDate, &e.AtBat, &e.PitchNum, &e.Batter, &e.Pitcher, &e.PitcherName,
		&e.Stand, &e.PThrows, &e.Inning, &e.HalfInning, &e.Outs, &e.Balls, &e.Strikes,
		&e.BatScore, &e.FldScore, &e.PostBatScore, &on1, &on2, &on3,
		&e.Description, &e.Event, &e.Des, &e.PitchType, &e.PitchName,
		&e.ReleaseSpeed, &e.PlateX, &e.PlateZ, &hasLoc,
		&e.HomeTeam, &e.AwayTeam, &e.XWOBA, &hasX, &e.WOBAValue, &e.WOBADenom,
	)
	if err != nil {
		return e, err
	}
	e.On1B, e.On2B, e.On3B = on1 != 0, on2 != 0, on3 != 0
	e.HasLocation = hasLoc != 0
	e.HasXWOBA = hasX != 0
	return e, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
