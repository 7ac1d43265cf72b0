package history

import (
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/lanejudge/internal/game"
	"git.lost.host/meutraa/lanejudge/internal/judge"
	"git.lost.host/meutraa/lanejudge/internal/session"
	"git.lost.host/meutraa/lanejudge/internal/testdata"
)

func openScorer(t *testing.T) *DefaultScorer {
	t.Helper()
	s := &DefaultScorer{now: func() time.Time { return time.Unix(1700000000, 0) }}
	if err := s.Init(filepath.Join(t.TempDir(), "scores.db")); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(s.Deinit)
	return s
}

func TestSaveLoadScore(t *testing.T) {
	var scorer Scorer = openScorer(t)

	chart, err := testdata.GetChart()
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	chart.Difficulty.Section = "0000\n1000\n"

	inputs := []game.Input{
		{Index: 1, HitTime: 1000 * time.Millisecond},
		{Index: 0, HitTime: 1030 * time.Millisecond},
		{Index: 2, HitTime: 1500 * time.Millisecond},
		{Index: 3, HitTime: 2000 * time.Millisecond},
		{Index: 2, HitTime: 2005 * time.Millisecond, Released: true},
	}
	cfg := session.DefaultConfig()
	cfg.Params.Mode = judge.Classic
	cfg.PoolEnabled = true
	played := session.Replay(chart, cfg, inputs)

	if err := scorer.Save(chart, inputs, cfg, played); err != nil {
		t.Fatalf("Save: %v", err)
	}

	histories, err := scorer.Load(chart)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(histories) != 1 {
		t.Fatalf("got %d histories, want 1", len(histories))
	}
	h := histories[0]
	if h.Mode != judge.Classic || !h.PoolEnabled || h.Rate != 1 {
		t.Errorf("settings not restored: %+v", h)
	}
	if h.TotalScore != played.TotalScore || h.MaxCombo != played.MaxCombo {
		t.Errorf("stored score %d/%d, want %d/%d", h.TotalScore, h.MaxCombo, played.TotalScore, played.MaxCombo)
	}
	if !h.PlayedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("played at %v", h.PlayedAt)
	}
	if len(h.Inputs) != len(inputs) {
		t.Fatalf("got %d inputs, want %d", len(h.Inputs), len(inputs))
	}

	// Replaying the stored inputs reproduces the score exactly.
	if replayed := scorer.Score(chart, &h, session.DefaultConfig()); replayed != played {
		t.Errorf("replayed %+v\nplayed   %+v", replayed, played)
	}
}

func TestLoadOtherChart(t *testing.T) {
	scorer := openScorer(t)
	chart, _ := testdata.GetChart()
	chart.Difficulty.Section = "a"
	if err := scorer.Save(chart, nil, session.DefaultConfig(), session.Replay(chart, session.DefaultConfig(), nil)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	other := *chart
	other.Difficulty.Section = "b"
	histories, err := scorer.Load(&other)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(histories) != 0 {
		t.Errorf("got %d histories for another chart", len(histories))
	}
}

func TestScoreUsesStoredSettings(t *testing.T) {
	scorer := openScorer(t)
	chart, err := testdata.GetChart()
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	chart.Difficulty.Section = "settings"

	inputs := []game.Input{
		{Index: 1, HitTime: 1000 * time.Millisecond},
		{Index: 0, HitTime: 1030 * time.Millisecond},
		{Index: 3, HitTime: 2060 * time.Millisecond},
	}
	cfg := session.DefaultConfig()
	cfg.Params.Mode = judge.Classic
	cfg.Params.OverallDifficulty = 8
	cfg.Params.SpeedMultiplier = 1.5
	cfg.Params.Converted = true
	cfg.InitialHealth = 0.5
	cfg.HpMultiplierNormal = 0.5
	cfg.Allowed = cfg.Allowed.Without(game.Great)
	cfg.BaseScores[game.Perfect.Index()] = 320
	played := session.Replay(chart, cfg, inputs)

	// The current settings judge the same inputs differently.
	current := session.DefaultConfig()
	if session.Replay(chart, current, inputs) == played {
		t.Fatal("settings did not change the result")
	}

	if err := scorer.Save(chart, inputs, cfg, played); err != nil {
		t.Fatalf("Save: %v", err)
	}
	histories, err := scorer.Load(chart)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(histories) != 1 {
		t.Fatalf("got %d histories, want 1", len(histories))
	}
	h := histories[0]
	if h.Config == nil || *h.Config != cfg {
		t.Fatalf("stored settings %+v, want %+v", h.Config, cfg)
	}
	if replayed := scorer.Score(chart, &h, current); replayed != played {
		t.Errorf("replayed %+v\nplayed   %+v", replayed, played)
	}
}

func TestScoreWithoutStoredSettings(t *testing.T) {
	chart, _ := testdata.GetChart()
	h := &History{Rate: 1, Mode: judge.Classic, PoolEnabled: true}
	cfg := session.DefaultConfig()
	cfg.InitialHealth = 0.5

	want := cfg
	want.Params.Mode = judge.Classic
	want.PoolEnabled = true
	if got := (&DefaultScorer{}).Score(chart, h, cfg); got != session.Replay(chart, want, nil) {
		t.Errorf("got %+v", got)
	}
}
