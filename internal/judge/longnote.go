package judge

import (
	"math"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

type holdRule struct {
	result   game.HitResult
	head     float64
	combined float64
	score    int
}

var holdRules = [...]holdRule{
	{game.Perfect, 1.2, 2.4, 300},
	{game.Great, 1.1, 2.2, 300},
	{game.Good, 1.0, 2.0, 200},
	{game.Ok, 1.0, 2.0, 100},
	{game.Meh, 1.0, 2.0, 50},
}

// LongNoteScorer scores a hold from its head and tail offsets. It always uses
// Classic windows, whatever mode the session plays in.
type LongNoteScorer struct {
	windows HitWindowSet
}

func NewLongNoteScorer(p Params) *LongNoteScorer {
	p.Mode = Classic
	return &LongNoteScorer{windows: ComputeWindows(p)}
}

func (s *LongNoteScorer) Windows() HitWindowSet {
	return s.windows
}

// Score returns the fixed value of the first rule both offsets fit under,
// or 0 when none does. Bounds are exclusive.
func (s *LongNoteScorer) Score(headOffset, tailOffset float64) int {
	head := math.Abs(headOffset)
	combined := head + math.Abs(tailOffset)
	for _, rule := range holdRules {
		window := s.windows.WindowFor(rule.result)
		if head < window*rule.head && combined < window*rule.combined {
			return rule.score
		}
	}
	return 0
}
