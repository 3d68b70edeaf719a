package splits

import (
	"math"
	"testing"

	"github.com/pable/go-mlb-splits/internal/model"
)

func pitchFrom(pitcher int64, name, hand string, game int64, atBat, num int, desc, event string) model.PitchEvent {
	return model.PitchEvent{
		GamePK:      game,
		GameDate:    "2025-06-01",
		AtBat:       atBat,
		PitchNum:    num,
		Batter:      batterID,
		Pitcher:     pitcher,
		PitcherName: name,
		PThrows:     hand,
		PitchName:   "4-Seam Fastball",
		Description: desc,
		Event:       event,
	}
}

func TestMatchups_RankByPitches(t *testing.T) {
	events := []model.PitchEvent{
		pitchFrom(pitcherR, "Webb, Logan", "R", game1, 1, 1, "called_strike", ""),
		pitchFrom(pitcherR, "Webb, Logan", "R", game1, 1, 2, "hit_into_play", "single"),
		pitchFrom(pitcherR, "Webb, Logan", "R", game1, 3, 1, "swinging_strike", "strikeout"),
		pitchFrom(pitcherL, "Kirby, George", "L", game1, 5, 1, "ball", "walk"),
	}
	single := pa(game1, 1, model.OutcomeSingle)
	strikeout := pa(game1, 3, model.OutcomeStrikeout)
	walk := pa(game1, 5, model.OutcomeWalk)
	walk.Pitcher = pitcherL
	walk.PitcherName = "Kirby, George"
	walk.PThrows = "L"

	an := analysis(single, strikeout, walk)
	an.Events = events

	lines := Matchups(an)
	if len(lines) != 2 {
		t.Fatalf("got %d matchup lines, want 2", len(lines))
	}
	if lines[0].Pitcher != pitcherR || lines[0].Pitches != 3 {
		t.Errorf("top line = %+v, want Webb with 3 pitches", lines[0])
	}
	webb := lines[0]
	if webb.PA != 2 || webb.AB != 2 || webb.H != 1 || webb.SO != 1 {
		t.Errorf("Webb line = %+v, want PA 2 AB 2 H 1 SO 1", webb)
	}
	if avg := webb.AVG(); !avg.Valid || math.Abs(avg.Value-0.5) > 1e-9 {
		t.Errorf("Webb AVG = %+v, want .500", avg)
	}
	kirby := lines[1]
	if kirby.BB != 1 || kirby.AB != 0 {
		t.Errorf("Kirby line = %+v, want BB 1 AB 0", kirby)
	}
	if kirby.AVG().Valid {
		t.Error("no at-bats should leave AVG invalid")
	}
}

func TestMatchups_PoolsIntentionalWalks(t *testing.T) {
	ibb := pa(game1, 1, model.OutcomeIntentWalk)
	lines := Matchups(analysis(ibb))
	if len(lines) != 1 || lines[0].BB != 1 {
		t.Fatalf("lines = %+v, want one line with BB 1", lines)
	}
}

func TestMatchupDetail_PitchSequences(t *testing.T) {
	events := []model.PitchEvent{
		pitchFrom(pitcherR, "Webb, Logan", "R", game1, 1, 1, "ball", ""),
		pitchFrom(pitcherR, "Webb, Logan", "R", game1, 1, 2, "hit_into_play", "double"),
		pitchFrom(pitcherL, "Kirby, George", "L", game1, 3, 1, "ball", "walk"),
		pitchFrom(pitcherR, "Webb, Logan", "R", game2, 2, 1, "swinging_strike", "strikeout"),
	}
	an := analysis()
	an.Events = events

	abs := MatchupDetail(an, pitcherR)
	if len(abs) != 2 {
		t.Fatalf("got %d at-bats, want 2", len(abs))
	}
	if len(abs[0].Pitches) != 2 {
		t.Fatalf("first at-bat has %d pitches, want 2", len(abs[0].Pitches))
	}
	if abs[0].Pitches[1].Event != "double" {
		t.Errorf("terminal pitch event = %q, want double", abs[0].Pitches[1].Event)
	}
	if abs[1].GamePK != game2 || len(abs[1].Pitches) != 1 {
		t.Errorf("second at-bat = %+v", abs[1])
	}
}

func TestGameLog_GroupsByGame(t *testing.T) {
	first := pa(game1, 1, model.OutcomeSingle)
	second := pa(game1, 2, model.OutcomeStrikeout)
	road := pa(game2, 1, model.OutcomeHomeRun)
	road.GameDate = "2025-06-02"
	road.Venue = "SEA"
	road.Opponent = "SEA"

	lines := GameLog(analysis(first, second, road))
	if len(lines) != 2 {
		t.Fatalf("got %d game lines, want 2", len(lines))
	}
	if lines[0].Stats.PA != 2 || lines[0].Stats.Hits() != 1 {
		t.Errorf("game 1 line = %+v", lines[0].Stats)
	}
	if lines[1].Venue != "SEA" || lines[1].Stats.HomeRuns != 1 {
		t.Errorf("game 2 line = %+v", lines[1])
	}
}
