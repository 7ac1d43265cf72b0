package score

import (
	"math"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

// BaseScores maps each countable result, Perfect..Pool, to its point value.
type BaseScores [7]int

var DefaultBaseScores = BaseScores{305, 300, 200, 100, 50, 0, 0}

// perfectComboWeight replaces the Perfect base score when weighting combo.
const perfectComboWeight = 300

// For panics for None or an unknown result.
func (b BaseScores) For(r game.HitResult) int {
	return b[r.Index()]
}

// ComboWeight is the base score used for combo weighting.
func (b BaseScores) ComboWeight(r game.HitResult) int {
	if r == game.Perfect {
		return perfectComboWeight
	}
	return b.For(r)
}

// Max is the highest base score a single judgement can earn.
func (b BaseScores) Max() int {
	max := 0
	for _, r := range game.Results {
		if v := b.For(r); v > max {
			max = v
		}
	}
	return max
}

func (b BaseScores) maxComboWeight() int {
	max := 0
	for _, r := range game.Results {
		if v := b.ComboWeight(r); v > max {
			max = v
		}
	}
	return max
}

var maxComboFactor = math.Log(400) / math.Log(4)

// ComboFactor is log4(combo) clamped to [0.5, log4(400)].
func ComboFactor(combo int) float64 {
	f := math.Log(float64(combo)) / math.Log(4)
	return math.Max(0.5, math.Min(maxComboFactor, f))
}

// ComboScoreDelta is the combo portion earned by a judgement that leaves the
// combo at comboAfter.
func (b BaseScores) ComboScoreDelta(r game.HitResult, comboAfter int) float64 {
	return float64(b.ComboWeight(r)) * ComboFactor(comboAfter)
}

// TotalScore blends the three portions into the displayed score.
func TotalScore(comboProgress, accuracy, accuracyProgress, bonusPortion float64) float64 {
	return 150000*comboProgress + 850000*math.Pow(accuracy, 2+2*accuracy)*accuracyProgress + bonusPortion
}
