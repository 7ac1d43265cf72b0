package judge

import (
	"fmt"
	"math"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

// PoolExtension is added to the Miss window when a mode has no Pool value.
const PoolExtension = 150.0

// Params is an immutable snapshot of everything a HitWindowSet depends on.
// Recompute the windows whenever any field changes.
type Params struct {
	Mode                 Mode
	OverallDifficulty    float64 // Clamped to [0, 10] by the caller
	SpeedMultiplier      float64
	DifficultyMultiplier float64
	BPM                  float64 // Only read by tempo-relative modes, must be positive
	Converted            bool
}

func DefaultParams() Params {
	return Params{
		Mode:                 Lazer,
		OverallDifficulty:    5,
		SpeedMultiplier:      1,
		DifficultyMultiplier: 1,
		BPM:                  120,
	}
}

func (p Params) TotalMultiplier() float64 {
	return p.SpeedMultiplier / p.DifficultyMultiplier
}

// HitWindowSet holds one millisecond threshold per result for a snapshot.
type HitWindowSet struct {
	windows [6]float64 // Perfect..Miss
	pool    float64
}

// WindowFor returns the threshold of r. It panics for None or an unknown result.
func (w HitWindowSet) WindowFor(r game.HitResult) float64 {
	switch r {
	case game.Perfect, game.Great, game.Good, game.Ok, game.Meh, game.Miss:
		return w.windows[r.Index()]
	case game.Pool:
		return w.pool
	}
	panic(fmt.Sprintf("judge: no window for %v", r))
}

func (w HitWindowSet) Pool() float64 {
	return w.pool
}

func (w HitWindowSet) Miss() float64 {
	return w.windows[len(w.windows)-1]
}

func (w HitWindowSet) String() string {
	return fmt.Sprintf("Perfect %.1f Great %.1f Good %.1f Ok %.1f Meh %.1f Miss %.1f Pool %.1f",
		w.windows[0], w.windows[1], w.windows[2], w.windows[3], w.windows[4], w.windows[5], w.pool)
}

func halfStep(v float64) float64 {
	return math.Floor(v) + 0.5
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ComputeWindows derives the window set for a snapshot. An unknown mode panics.
func ComputeWindows(p Params) HitWindowSet {
	var w HitWindowSet
	m := p.TotalMultiplier()
	pool := -1.0

	switch p.Mode.Family() {
	case FamilyInterpolated:
		for i, r := range lazerRanges {
			w.windows[i] = halfStep(r.Interpolate(p.OverallDifficulty) * m)
		}

	case FamilyClassic:
		if p.Converted {
			great, good := 47.0, 77.0
			if math.Round(p.OverallDifficulty) > 4 {
				great, good = 34, 67
			}
			w.windows = [6]float64{
				halfStep(16 * m),
				halfStep(great * m),
				halfStep(good * m),
				halfStep(97 * m),
				halfStep(121 * m),
				halfStep(158 * m),
			}
			break
		}
		inverted := clamp(10-p.OverallDifficulty, 0, 10)
		w.windows = [6]float64{
			halfStep(16 * m),
			halfStep((34 + 3*inverted) * m),
			halfStep((67 + 3*inverted) * m),
			halfStep((97 + 3*inverted) * m),
			halfStep((121 + 3*inverted) * m),
			halfStep((158 + 3*inverted) * m),
		}

	case FamilyTempo:
		cool := 7500 / p.BPM * m
		good := 22500 / p.BPM * m
		bad := 31250 / p.BPM * m
		w.windows = [6]float64{cool, cool, good, good, bad, bad}

	case FamilyTable:
		row := p.Mode.profile().windows
		for i := range w.windows {
			w.windows[i] = row[i] * m
		}
		if len(row) > len(w.windows) {
			pool = row[len(w.windows)] * m
		}

	default:
		panic(fmt.Sprintf("judge: unknown window family for mode %v", p.Mode))
	}

	if pool < 0 {
		pool = w.Miss() + PoolExtension
	}
	w.pool = pool
	return w
}

// Cache keeps the last computed set and only recomputes when the snapshot
// changes. It belongs to a single session.
type Cache struct {
	params  Params
	windows HitWindowSet
	valid   bool
}

func (c *Cache) Windows(p Params) HitWindowSet {
	if !c.valid || c.params != p {
		c.params = p
		c.windows = ComputeWindows(p)
		c.valid = true
	}
	return c.windows
}
