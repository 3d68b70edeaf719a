// Package config defines the tunable thresholds for the splits engine and
// loads them from defaults, an optional YAML file, and MLBSPLITS_* env vars.
package config

// Config contains every knob the engine exposes. Flat keys so that env
// overrides map one-to-one (MLBSPLITS_TREND_WINDOW -> trend_window).
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LeverageInning and LateMargin define the late-and-close situation:
	// inning >= LeverageInning and |score diff| <= LateMargin.
	LeverageInning int `koanf:"leverage_inning"`
	LateMargin     int `koanf:"late_margin"`

	// TrendWindow/TrendMin size the rolling expected-wOBA series.
	TrendWindow int `koanf:"trend_window"`
	TrendMin    int `koanf:"trend_min"`

	// LeagueXWOBA is the reference line printed next to the trend.
	LeagueXWOBA float64 `koanf:"league_xwoba"`

	// Zone cell boundaries, ascending, in feet. Four values each: the
	// outer edges plus the two inner cuts.
	ZoneXEdges []float64 `koanf:"zone_x_edges"`
	ZoneZEdges []float64 `koanf:"zone_z_edges"`

	// Savant fetch behavior.
	FetchChunkDays  int     `koanf:"fetch_chunk_days"`
	FetchPerSec     float64 `koanf:"fetch_per_sec"`
	BreakerFailures int     `koanf:"breaker_failures"`
}

// Engine is the slice of Config the normalizer and classifier need.
type Engine struct {
	LeverageInning int
	LateMargin     int
}

// ZoneGrid holds the strike-zone cell boundaries, ascending.
type ZoneGrid struct {
	XEdges [4]float64
	ZEdges [4]float64
}

// New returns the built-in defaults: the classic Statcast zone grid and
// the usual late-and-close definition.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LeverageInning:  7,
		LateMargin:      1,
		TrendWindow:     100,
		TrendMin:        20,
		LeagueXWOBA:     0.324,
		ZoneXEdges:      []float64{-1.0, -0.33, 0.33, 1.0},
		ZoneZEdges:      []float64{1.5, 2.3, 3.1, 3.9},
		FetchChunkDays:  15,
		FetchPerSec:     2,
		BreakerFailures: 3,
	}
}

// Engine returns the classifier view of the config.
func (c *Config) Engine() Engine {
	return Engine{LeverageInning: c.LeverageInning, LateMargin: c.LateMargin}
}

// Grid returns the zone view of the config. Callers must have validated
// the edge slices via Load; New's defaults always satisfy it.
func (c *Config) Grid() ZoneGrid {
	var g ZoneGrid
	copy(g.XEdges[:], c.ZoneXEdges)
	copy(g.ZEdges[:], c.ZoneZEdges)
	return g
}
