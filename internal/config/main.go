package config

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"git.lost.host/meutraa/lanejudge/internal/game"
	"git.lost.host/meutraa/lanejudge/internal/health"
	"git.lost.host/meutraa/lanejudge/internal/judge"
	"git.lost.host/meutraa/lanejudge/internal/score"
	"git.lost.host/meutraa/lanejudge/internal/session"
)

const (
	DefaultDatabase = "./scores.db"
)

// Config is the judgement configuration file.
type Config struct {
	Mode        judge.Mode `yaml:"mode"`
	PoolEnabled bool       `yaml:"pool_enabled"`
	Rate        float64    `yaml:"rate"`

	// Override the chart's values when set.
	OverallDifficulty *float64 `yaml:"overall_difficulty"`
	DrainRate         *float64 `yaml:"drain_rate"`
	BPM               *float64 `yaml:"bpm"`

	SpeedMultiplier      float64 `yaml:"speed_multiplier"`
	DifficultyMultiplier float64 `yaml:"difficulty_multiplier"`
	HpMultiplierNormal   float64 `yaml:"hp_multiplier_normal"`
	InitialHealth        float64 `yaml:"initial_health"`

	// BaseScores overrides single entries of the base-score table by result name.
	BaseScores map[string]int `yaml:"base_scores"`

	// Disabled lists results the classifier may never return.
	Disabled []string `yaml:"disabled"`

	Database string `yaml:"database"`
}

func defaults() *Config {
	return &Config{
		Mode:                 judge.Lazer,
		Rate:                 1,
		SpeedMultiplier:      1,
		DifficultyMultiplier: 1,
		HpMultiplierNormal:   health.DefaultHpMultiplierNormal,
		InitialHealth:        1,
		Database:             DefaultDatabase,
	}
}

func Default() *Config {
	return defaults()
}

// Load reads and parses the config file at path. Missing fields keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %q", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "config: parse yaml")
	}
	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Rate <= 0 {
		return errors.Errorf("rate %v must be positive", cfg.Rate)
	}
	if cfg.SpeedMultiplier <= 0 || cfg.DifficultyMultiplier <= 0 {
		return errors.New("speed_multiplier and difficulty_multiplier must be positive")
	}
	if cfg.InitialHealth < 0 || cfg.InitialHealth > 1 {
		return errors.Errorf("initial_health %v is out of range [0, 1]", cfg.InitialHealth)
	}
	if cfg.BPM != nil && *cfg.BPM <= 0 {
		return errors.Errorf("bpm %v must be positive", *cfg.BPM)
	}
	for name := range cfg.BaseScores {
		if _, err := game.ParseHitResult(name); err != nil {
			return errors.Wrap(err, "base_scores")
		}
	}
	for _, name := range cfg.Disabled {
		if _, err := game.ParseHitResult(name); err != nil {
			return errors.Wrap(err, "disabled")
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Session builds the immutable snapshot a play of chart runs with. Chart
// values are clamped here, the judging core does not validate them.
func (c *Config) Session(d game.Difficulty) session.Config {
	od, drain, bpm := d.OverallDifficulty, d.DrainRate, d.BPM
	if c.OverallDifficulty != nil {
		od = *c.OverallDifficulty
	}
	if c.DrainRate != nil {
		drain = *c.DrainRate
	}
	if c.BPM != nil {
		bpm = *c.BPM
	}
	if bpm <= 0 {
		bpm = judge.DefaultParams().BPM
	}

	table := score.DefaultBaseScores
	for name, v := range c.BaseScores {
		r, _ := game.ParseHitResult(name)
		table[r.Index()] = v
	}
	allowed := game.AllResults
	for _, name := range c.Disabled {
		r, _ := game.ParseHitResult(name)
		allowed = allowed.Without(r)
	}

	return session.Config{
		Params: judge.Params{
			Mode:                 c.Mode,
			OverallDifficulty:    clamp(od, 0, 10),
			SpeedMultiplier:      c.SpeedMultiplier,
			DifficultyMultiplier: c.DifficultyMultiplier,
			BPM:                  bpm,
			Converted:            d.Converted,
		},
		Rate:               c.Rate,
		PoolEnabled:        c.PoolEnabled,
		Allowed:            allowed,
		DrainRate:          clamp(drain, 0, 10),
		HpMultiplierNormal: c.HpMultiplierNormal,
		InitialHealth:      c.InitialHealth,
		BaseScores:         table,
	}
}
