package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-mlb-splits/internal/model"
)

var zoneRows = [3]string{"HIGH", "MID", "LOW"}

// PrintZoneReport prints the 3×3 strike-zone grids: pitches seen, swing
// rate, contact rate, and batting average on zone-decided at-bats, plus
// the outside-zone summary.
func PrintZoneReport(w io.Writer, z *model.ZoneReport) {
	printZoneGrid(w, "Pitches seen", z, func(c *model.ZoneCell) string {
		return strconv.Itoa(c.Pitches)
	})
	printZoneGrid(w, "Swing rate", z, func(c *model.ZoneCell) string {
		return pctStr(c.SwingRate())
	})
	printZoneGrid(w, "Contact rate", z, func(c *model.ZoneCell) string {
		return pctStr(c.ContactRate())
	})
	printZoneGrid(w, "Batting average", z, func(c *model.ZoneCell) string {
		return rateStr(c.AVG())
	})

	fmt.Fprintf(w, "\nOutside the zone: %d pitches, chase %s\n", z.Outside.Pitches, pctStr(z.ChaseRate()))
	fmt.Fprintf(w, "In-zone swing rate: %s\n", pctStr(z.ZoneSwingRate()))
	if z.Unlocated > 0 {
		fmt.Fprintf(w, "Unlocated pitches excluded: %d\n", z.Unlocated)
	}
}

func printZoneGrid(w io.Writer, title string, z *model.ZoneReport, cell func(*model.ZoneCell) string) {
	fmt.Fprintf(w, "\n%s\n", title)

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header(" ", "LEFT", "MIDDLE", "RIGHT")
	for i := range z.Cells {
		table.Append(
			zoneRows[i],
			cell(&z.Cells[i][0]),
			cell(&z.Cells[i][1]),
			cell(&z.Cells[i][2]),
		)
	}
	table.Render()
}

// PrintTrend prints the tail of the rolling expected-wOBA series against
// the league reference.
func PrintTrend(w io.Writer, points []model.TrendPoint, window int, league float64, tail int) {
	if len(points) == 0 {
		fmt.Fprintln(w, "Not enough qualifying plate appearances for a trend.")
		return
	}

	fmt.Fprintf(w, "\nRolling xwOBA, window %d PA  |  league %s\n\n", window, trimZero(league))

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	start := 0
	if tail > 0 && len(points) > tail {
		start = len(points) - tail
	}

	table.Header("PA#", "DATE", "VALUE", "ROLLING", "VS LG")
	for _, p := range points[start:] {
		table.Append(
			strconv.Itoa(p.Index),
			p.GameDate,
			trimZero(p.Value),
			trimZero(p.Rolling),
			fmt.Sprintf("%+.3f", p.Rolling-league),
		)
	}
	table.Render()

	last := points[len(points)-1]
	fmt.Fprintf(w, "\nCurrent: %s (%+.3f vs league)\n", trimZero(last.Rolling), last.Rolling-league)
}

// PrintMatchupTable prints the pitcher-by-pitcher history, most-faced first.
func PrintMatchupTable(w io.Writer, lines []model.MatchupLine, limit int) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("PITCHER", "ID", "HAND", "PITCHES", "PA", "AB", "H", "HR", "BB", "SO", "AVG")

	for i, m := range lines {
		if limit > 0 && i >= limit {
			break
		}
		table.Append(
			m.PitcherName,
			strconv.FormatInt(m.Pitcher, 10),
			orDash(m.PThrows),
			strconv.Itoa(m.Pitches),
			strconv.Itoa(m.PA),
			strconv.Itoa(m.AB),
			strconv.Itoa(m.H),
			strconv.Itoa(m.HR),
			strconv.Itoa(m.BB),
			strconv.Itoa(m.SO),
			rateStr(m.AVG()),
		)
	}
	table.Render()
}

// PrintMatchupDetail prints every at-bat against one pitcher, pitch by pitch.
func PrintMatchupDetail(w io.Writer, pitcherName string, abs []model.MatchupAtBat) {
	fmt.Fprintf(w, "\nvs %s: %d at-bats\n", pitcherName, len(abs))

	for _, ab := range abs {
		result := "in progress"
		if n := len(ab.Pitches); n > 0 && ab.Pitches[n-1].Event != "" {
			result = ab.Pitches[n-1].Event
		}
		fmt.Fprintf(w, "\n%s  inning %d  –  %s (%d pitches)\n", ab.GameDate, ab.Inning, result, len(ab.Pitches))
		for _, p := range ab.Pitches {
			speed := "    —"
			if p.ReleaseSpeed > 0 {
				speed = fmt.Sprintf("%5.1f", p.ReleaseSpeed)
			}
			name := p.PitchName
			if name == "" {
				name = "Unknown"
			}
			fmt.Fprintf(w, "  %d. [%d-%d] %-18s %s  %s\n", p.PitchNum, p.Balls, p.Strikes, name, speed, p.Description)
		}
	}
}

// PrintGameLog prints per-game totals, oldest first.
func PrintGameLog(w io.Writer, lines []model.GameLine) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("DATE", "OPP", "PA", "AB", "H", "2B", "3B", "HR", "BB", "SO", "R*", "RBI*")

	for _, g := range lines {
		opp := "vs " + g.Opponent
		if !g.Home {
			opp = "@ " + g.Opponent
		}
		s := g.Stats
		table.Append(
			g.GameDate,
			opp,
			strconv.Itoa(s.PA),
			strconv.Itoa(s.AB()),
			strconv.Itoa(s.Hits()),
			strconv.Itoa(s.Doubles),
			strconv.Itoa(s.Triples),
			strconv.Itoa(s.HomeRuns),
			strconv.Itoa(s.BB+s.IBB),
			strconv.Itoa(s.SO),
			strconv.Itoa(s.Runs),
			strconv.Itoa(s.RBI),
		)
	}
	table.Render()
}

// pctStr renders a 0..1 rate as a whole percentage, "—" when undefined.
func pctStr(r model.Rate) string {
	if !r.Valid {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", r.Value*100)
}

// trimZero renders a wOBA-scale value without the leading zero.
func trimZero(v float64) string {
	return strings.TrimPrefix(fmt.Sprintf("%.3f", v), "0")
}
