package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MLBSPLITS_CONFIG is set
//  3. env (prefix MLBSPLITS_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MLBSPLITS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Env keys like MLBSPLITS_TREND_WINDOW -> trend_window (flat keys,
	// underscores preserved to match the koanf tags on the struct).
	envProvider := env.Provider("MLBSPLITS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "mlbsplits_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(c *Config) error {
	if err := checkEdges("zone_x_edges", c.ZoneXEdges); err != nil {
		return err
	}
	if err := checkEdges("zone_z_edges", c.ZoneZEdges); err != nil {
		return err
	}
	if c.TrendWindow < 1 || c.TrendMin < 1 {
		return fmt.Errorf("trend_window and trend_min must be positive")
	}
	if c.TrendMin > c.TrendWindow {
		return fmt.Errorf("trend_min %d exceeds trend_window %d", c.TrendMin, c.TrendWindow)
	}
	if c.FetchChunkDays < 1 {
		return fmt.Errorf("fetch_chunk_days must be positive")
	}
	if c.FetchPerSec <= 0 {
		return fmt.Errorf("fetch_per_sec must be positive")
	}
	return nil
}

func checkEdges(name string, edges []float64) error {
	if len(edges) != 4 {
		return fmt.Errorf("%s: want 4 boundaries, got %d", name, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return fmt.Errorf("%s: boundaries must be strictly ascending", name)
		}
	}
	return nil
}
