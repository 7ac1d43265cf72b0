package judge

import (
	"testing"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

func TestLongNoteScore(t *testing.T) {
	s := NewLongNoteScorer(params(Classic, 5))
	perfect := s.Windows().WindowFor(game.Perfect)
	great := s.Windows().WindowFor(game.Great)

	tests := []struct {
		Name       string
		Head, Tail float64
		Expected   int
	}{
		{"tight", 10, 5, 300},
		{"early head", -10, 5, 300},
		{"head on perfect bound falls to great", perfect * 1.2, 0, 300},
		{"head on great bound falls to good", great * 1.1, 0, 200},
		{"combined on great bound falls to good", 0, great * 2.2, 200},
		{"ok", 100, 100, 100},
		{"meh", 130, 130, 50},
		{"outside", 200, 0, 0},
		{"late release", 0, 400, 0},
	}
	for _, test := range tests {
		if out := s.Score(test.Head, test.Tail); out != test.Expected {
			t.Errorf("%s: Score(%v, %v) = %v, want %v", test.Name, test.Head, test.Tail, out, test.Expected)
		}
	}
}

func TestLongNoteIgnoresActiveMode(t *testing.T) {
	classic := ComputeWindows(params(Classic, 7))
	for _, mode := range Modes {
		s := NewLongNoteScorer(params(mode, 7))
		if s.Windows() != classic {
			t.Errorf("%v: hold windows %v, want classic %v", mode, s.Windows(), classic)
		}
	}
}
