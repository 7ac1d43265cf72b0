package score

import (
	"math"
	"testing"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

func TestComboFactor(t *testing.T) {
	tests := map[int]float64{
		0:    0.5,
		1:    0.5,
		2:    0.5,
		4:    1,
		16:   2,
		64:   3,
		400:  math.Log(400) / math.Log(4),
		1000: math.Log(400) / math.Log(4),
	}
	for combo, expected := range tests {
		if out := ComboFactor(combo); math.Abs(out-expected) > 1e-12 {
			t.Errorf("ComboFactor(%d) = %v, want %v", combo, out, expected)
		}
	}
}

func TestComboWeightPerfectAsymmetry(t *testing.T) {
	if w := DefaultBaseScores.ComboWeight(game.Perfect); w != 300 {
		t.Errorf("perfect combo weight %d, want 300", w)
	}
	if b := DefaultBaseScores.For(game.Perfect); b != 305 {
		t.Errorf("perfect base score %d, want 305", b)
	}
	if w := DefaultBaseScores.ComboWeight(game.Good); w != 200 {
		t.Errorf("good combo weight %d, want 200", w)
	}
}

func TestConsecutiveGreats(t *testing.T) {
	p := NewProcessor(DefaultBaseScores, 10)
	for i := 1; i <= 10; i++ {
		delta := p.Apply(game.Great, 0)
		expected := 300 * math.Max(0.5, math.Log(float64(i))/math.Log(4))
		if math.Abs(delta-expected) > 1e-9 {
			t.Errorf("combo %d: delta %v, want %v", i, delta, expected)
		}
	}
	if p.Combo() != 10 || p.MaxCombo() != 10 {
		t.Errorf("combo %d max %d, want 10", p.Combo(), p.MaxCombo())
	}
	if math.Abs(p.Accuracy()-300.0/305) > 1e-12 {
		t.Errorf("accuracy %v", p.Accuracy())
	}
}

func TestComboClampAboveLimit(t *testing.T) {
	low := DefaultBaseScores.ComboScoreDelta(game.Great, 1)
	if low != 150 {
		t.Errorf("combo 1 delta %v, want 150", low)
	}
	high := DefaultBaseScores.ComboScoreDelta(game.Great, 401)
	capped := DefaultBaseScores.ComboScoreDelta(game.Great, 400)
	if high != capped {
		t.Errorf("combo 401 delta %v, want %v", high, capped)
	}
}

func TestPerfectPlayIsMaxScore(t *testing.T) {
	p := NewProcessor(DefaultBaseScores, 500)
	if p.TotalScore() != 0 {
		t.Errorf("score before play %v, want 0", p.TotalScore())
	}
	for i := 0; i < 500; i++ {
		p.Apply(game.Perfect, 0)
	}
	if s := p.Score(); s.TotalScore != 1000000 {
		t.Errorf("total %d, want 1000000", s.TotalScore)
	}
	if p.Accuracy() != 1 {
		t.Errorf("accuracy %v, want 1", p.Accuracy())
	}
}

func TestComboBreaks(t *testing.T) {
	p := NewProcessor(DefaultBaseScores, 6)
	for _, r := range []game.HitResult{game.Perfect, game.Perfect, game.Miss, game.Perfect, game.Pool, game.Meh} {
		p.Apply(r, 0)
	}
	if p.Combo() != 1 || p.MaxCombo() != 2 {
		t.Errorf("combo %d max %d, want 1 and 2", p.Combo(), p.MaxCombo())
	}
	if p.Count(game.Pool) != 1 || p.Count(game.Perfect) != 3 {
		t.Errorf("counts %v", p.Score().Counts)
	}
	expected := float64(305*3+50) / float64(305*6)
	if math.Abs(p.Accuracy()-expected) > 1e-12 {
		t.Errorf("accuracy %v, want %v", p.Accuracy(), expected)
	}
	if p.AccuracyProgress() != 1 {
		t.Errorf("accuracy progress %v, want 1", p.AccuracyProgress())
	}
}

func TestCustomTable(t *testing.T) {
	table := BaseScores{320, 300, 200, 100, 50, 0, 0}
	p := NewProcessor(table, 1)
	p.Apply(game.Perfect, 0)
	if p.Accuracy() != 1 {
		t.Errorf("accuracy %v, want 1", p.Accuracy())
	}
	if delta := table.ComboScoreDelta(game.Perfect, 4); delta != 300 {
		t.Errorf("combo delta %v, want 300", delta)
	}
}

func TestHitErrorStatistics(t *testing.T) {
	p := NewProcessor(DefaultBaseScores, 3)
	p.Apply(game.Great, 10)
	p.Apply(game.Great, -10)
	p.Apply(game.Miss, 500)
	if p.Mean() != 0 {
		t.Errorf("mean %v, want 0", p.Mean())
	}
	if math.Abs(p.Stdev()-math.Sqrt(200)) > 1e-9 {
		t.Errorf("stdev %v, want %v", p.Stdev(), math.Sqrt(200))
	}
}

func TestBonusPortion(t *testing.T) {
	p := NewProcessor(DefaultBaseScores, 1)
	p.Apply(game.Perfect, 0)
	p.AddBonus(500)
	if p.TotalScore() != 1000500 {
		t.Errorf("total %v, want 1000500", p.TotalScore())
	}
}

func TestApplyNonePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for None")
		}
	}()
	NewProcessor(DefaultBaseScores, 1).Apply(game.None, 0)
}
