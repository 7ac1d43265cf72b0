// Package health tracks the player's life bar. Health only moves on
// judgements; there is no passive drain.
package health

import (
	"fmt"
	"math"

	"git.lost.host/meutraa/lanejudge/internal/game"
	"git.lost.host/meutraa/lanejudge/internal/judge"
)

// DefaultHpMultiplierNormal scales positive Lazer deltas when nothing else is configured.
const DefaultHpMultiplierNormal = 1.0

type Processor struct {
	Mode               judge.Mode
	DrainRate          float64
	HpMultiplierNormal float64

	health float64
	last   game.HitResult
	streak int
}

func NewProcessor(mode judge.Mode, drainRate, hpMultiplierNormal, initial float64) *Processor {
	p := &Processor{
		Mode:               mode,
		DrainRate:          drainRate,
		HpMultiplierNormal: hpMultiplierNormal,
	}
	p.Reset(initial)
	return p
}

func (p *Processor) Reset(initial float64) {
	p.health = clamp(initial)
	p.last = game.None
	p.streak = 0
}

func (p *Processor) Health() float64 {
	return p.health
}

func (p *Processor) Streak() int {
	return p.streak
}

// Failed reports whether health has run out.
func (p *Processor) Failed() bool {
	return p.health <= 0
}

// PassiveDrain is the health lost per millisecond of play, always zero here.
func (p *Processor) PassiveDrain() float64 {
	return 0
}

// Apply records a judgement, updates health and returns the delta that was
// computed before clamping.
func (p *Processor) Apply(result game.HitResult, kind game.ObjectKind) float64 {
	if result == p.last {
		p.streak++
	} else {
		p.streak = 1
		p.last = result
	}

	delta := p.delta(result, kind)
	p.health = clamp(p.health + delta)
	return delta
}

func (p *Processor) delta(result game.HitResult, kind game.ObjectKind) float64 {
	if p.Mode.Family() == judge.FamilyInterpolated {
		return lazerDelta(result, kind, p.DrainRate, p.streak, p.HpMultiplierNormal)
	}
	return tableDelta(p.Mode.HealthRow(), result, p.streak)
}

func lazerDelta(result game.HitResult, kind game.ObjectKind, d float64, streak int, hpMultiplier float64) float64 {
	var increase float64
	switch result {
	case game.Pool:
		return -(0.075 + float64(minInt(streak-1, 4))*0.0125)
	case game.Miss:
		if kind.IsHoldPart() {
			return -(d + 1) * 0.00375
		}
		return -(d + 1) * 0.0075
	case game.Meh:
		return -(d + 1) * 0.0016
	case game.Ok:
		return 0
	case game.Good:
		increase = 0.004 - d*0.0004
	case game.Great:
		increase = 0.0051 - d*0.0005
	case game.Perfect:
		increase = 0.0053 - d*0.0005
	default:
		panic(fmt.Sprintf("health: no delta for %v", result))
	}
	if increase > 0 {
		increase *= float64(streak)
	}
	return increase * hpMultiplier
}

func tableDelta(row [7]int, result game.HitResult, streak int) float64 {
	if !result.Valid() || result == game.None {
		panic(fmt.Sprintf("health: no delta for %v", result))
	}
	v := row[result.Index()]
	if v > 0 {
		v *= streak
	}
	return float64(v) / 1000
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
