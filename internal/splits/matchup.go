package splits

import (
	"sort"

	"github.com/pable/go-mlb-splits/internal/model"
)

// Matchups summarizes the batter's history against every pitcher faced,
// ranked by pitches seen. The walk column pools intentional walks.
func Matchups(an *model.Analysis) []model.MatchupLine {
	if an == nil {
		return nil
	}

	type entry struct {
		line model.MatchupLine
		acc  *accum
	}
	byPitcher := make(map[int64]*entry)
	get := func(id int64, name, hand string) *entry {
		e := byPitcher[id]
		if e == nil {
			e = &entry{
				line: model.MatchupLine{Pitcher: id, PitcherName: name, PThrows: hand},
				acc:  newAccum(),
			}
			byPitcher[id] = e
		}
		return e
	}

	for i := range an.Events {
		ev := &an.Events[i]
		get(ev.Pitcher, ev.PitcherName, ev.PThrows).line.Pitches++
	}
	for i := range an.PAs {
		pa := &an.PAs[i]
		if pa.Unclassified {
			continue
		}
		get(pa.Pitcher, pa.PitcherName, pa.PThrows).acc.add(pa)
	}

	lines := make([]model.MatchupLine, 0, len(byPitcher))
	for _, e := range byPitcher {
		s := e.acc.stats
		e.line.PA = s.PA
		e.line.AB = s.AB()
		e.line.H = s.Hits()
		e.line.HR = s.HomeRuns
		e.line.SO = s.SO
		e.line.BB = s.BB + s.IBB
		lines = append(lines, e.line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Pitches != lines[j].Pitches {
			return lines[i].Pitches > lines[j].Pitches
		}
		if lines[i].PA != lines[j].PA {
			return lines[i].PA > lines[j].PA
		}
		return lines[i].PitcherName < lines[j].PitcherName
	})
	return lines
}

// MatchupDetail returns the pitch-by-pitch record of every at-bat against
// one pitcher, in chronological order.
func MatchupDetail(an *model.Analysis, pitcher int64) []model.MatchupAtBat {
	if an == nil {
		return nil
	}

	var (
		abs []model.MatchupAtBat
		cur *model.MatchupAtBat
	)
	for i := range an.Events {
		ev := &an.Events[i]
		if ev.Pitcher != pitcher {
			continue
		}
		if cur == nil || cur.GamePK != ev.GamePK || cur.AtBat != ev.AtBat {
			abs = append(abs, model.MatchupAtBat{
				GamePK:   ev.GamePK,
				GameDate: ev.GameDate,
				Inning:   ev.Inning,
				AtBat:    ev.AtBat,
			})
			cur = &abs[len(abs)-1]
		}
		cur.Pitches = append(cur.Pitches, model.MatchupPitch{
			PitchNum:     ev.PitchNum,
			PitchName:    ev.PitchName,
			Balls:        ev.Balls,
			Strikes:      ev.Strikes,
			Description:  ev.Description,
			ReleaseSpeed: ev.ReleaseSpeed,
			Event:        ev.Event,
		})
	}
	return abs
}
