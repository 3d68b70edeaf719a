package savant

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pable/go-mlb-splits/internal/model"
)

// DecodeCSV parses a Statcast search CSV into pitch events. Columns are
// resolved by header name because the column set drifts across seasons;
// optional columns may be absent entirely. Rows missing any of the three
// grouping keys are dropped with a warning.
func DecodeCSV(r io.Reader) ([]model.PitchEvent, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, req := range []string{"game_pk", "at_bat_number", "pitch_number"} {
		if _, ok := col[req]; !ok {
			return nil, fmt.Errorf("csv missing required column %q", req)
		}
	}

	var events []model.PitchEvent
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := rowReader{rec: rec, col: col}

		e := model.PitchEvent{
			GamePK:   row.int64("game_pk"),
			GameDate: row.str("game_date"),
			AtBat:    row.intOr("at_bat_number", 0),
			PitchNum: row.intOr("pitch_number", 0),

			Batter:      row.int64("batter"),
			Pitcher:     row.int64("pitcher"),
			PitcherName: row.str("player_name"),
			Stand:       row.str("stand"),
			PThrows:     row.str("p_throws"),

			Inning:     row.intOr("inning", 0),
			HalfInning: row.str("inning_topbot"),
			Outs:       row.intOr("outs_when_up", 0),
			Balls:      row.intOr("balls", 0),
			Strikes:    row.intOr("strikes", 0),

			BatScore:     row.intOr("bat_score", 0),
			FldScore:     row.intOr("fld_score", 0),
			PostBatScore: row.intOr("post_bat_score", -1),

			On1B: row.occupied("on_1b"),
			On2B: row.occupied("on_2b"),
			On3B: row.occupied("on_3b"),

			Description: row.str("description"),
			Event:       row.str("events"),
			Des:         row.str("des"),

			PitchType: row.str("pitch_type"),
			PitchName: row.str("pitch_name"),

			HomeTeam: row.str("home_team"),
			AwayTeam: row.str("away_team"),

			WOBADenom: row.intOr("woba_denom", 0),
		}
		if v, ok := row.float("release_speed"); ok {
			e.ReleaseSpeed = v
		}
		if x, okX := row.float("plate_x"); okX {
			if z, okZ := row.float("plate_z"); okZ {
				e.PlateX, e.PlateZ, e.HasLocation = x, z, true
			}
		}
		if v, ok := row.float("estimated_woba_using_speedangle"); ok {
			e.XWOBA, e.HasXWOBA = v, true
		}
		if v, ok := row.float("woba_value"); ok {
			e.WOBAValue = v
		}

		if e.GamePK <= 0 || e.AtBat <= 0 || e.PitchNum <= 0 {
			log.Warn().Int("line", line).Msg("dropping csv row without grouping keys")
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// rowReader resolves record fields by column name, tolerating short rows
// and absent columns.
type rowReader struct {
	rec []string
	col map[string]int
}

func (r rowReader) str(name string) string {
	i, ok := r.col[name]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

// intOr parses an integer field, accepting float renderings like "3.0".
func (r rowReader) intOr(name string, missing int) int {
	s := r.str(name)
	if s == "" {
		return missing
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return missing
}

func (r rowReader) int64(name string) int64 {
	s := r.str(name)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

func (r rowReader) float(name string) (float64, bool) {
	s := r.str(name)
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "na") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// occupied reports whether a runner id occupies the base column.
func (r rowReader) occupied(name string) bool {
	s := r.str(name)
	return s != "" && !strings.EqualFold(s, "null") && !strings.EqualFold(s, "na")
}
