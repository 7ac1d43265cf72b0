package score

import (
	"math"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

// Score is the summary of a play.
type Score struct {
	TotalScore int64
	Accuracy   float64
	MaxCombo   int
	Counts     [7]int // Perfect..Pool
	MeanError  float64
	Stdev      float64
	HoldScore  int
	Health     float64
}

func (s Score) Count(r game.HitResult) int {
	return s.Counts[r.Index()]
}

// Processor accumulates combo, accuracy and bonus for one play. The portions
// are normalised against a chart of maxJudgements judgements.
type Processor struct {
	table         BaseScores
	maxJudgements int

	maxComboPortion float64
	comboPortion    float64
	baseScore       float64
	maxBaseScore    float64
	bonusPortion    float64

	judged   int
	combo    int
	maxCombo int
	counts   [7]int

	// hit error statistics in ms
	hits          int
	sumOfDistance float64
	sumOfSquares  float64
}

func NewProcessor(table BaseScores, maxJudgements int) *Processor {
	p := &Processor{table: table, maxJudgements: maxJudgements}
	weight := float64(table.maxComboWeight())
	for i := 1; i <= maxJudgements; i++ {
		p.maxComboPortion += weight * ComboFactor(i)
	}
	return p
}

func (p *Processor) Table() BaseScores {
	return p.table
}

// Apply records a judgement with its signed offset and returns the combo
// portion it earned. None or an unknown result panics.
func (p *Processor) Apply(r game.HitResult, offset float64) float64 {
	base := p.table.For(r)

	if r.BreaksCombo() {
		p.combo = 0
	} else {
		p.combo++
		if p.combo > p.maxCombo {
			p.maxCombo = p.combo
		}
	}

	delta := p.table.ComboScoreDelta(r, p.combo)
	p.comboPortion += delta
	p.baseScore += float64(base)
	p.maxBaseScore += float64(p.table.Max())
	p.judged++
	p.counts[r.Index()]++

	if r.IsHit() {
		p.hits++
		p.sumOfDistance += offset
		p.sumOfSquares += offset * offset
	}
	return delta
}

func (p *Processor) AddBonus(v float64) {
	p.bonusPortion += v
}

func (p *Processor) Combo() int {
	return p.combo
}

func (p *Processor) MaxCombo() int {
	return p.maxCombo
}

func (p *Processor) Judged() int {
	return p.judged
}

func (p *Processor) Count(r game.HitResult) int {
	return p.counts[r.Index()]
}

// Accuracy is 1 until something has been judged.
func (p *Processor) Accuracy() float64 {
	if p.maxBaseScore == 0 {
		return 1
	}
	return p.baseScore / p.maxBaseScore
}

func (p *Processor) ComboProgress() float64 {
	if p.maxComboPortion == 0 {
		return 0
	}
	return p.comboPortion / p.maxComboPortion
}

func (p *Processor) AccuracyProgress() float64 {
	if p.maxJudgements == 0 {
		return 0
	}
	return float64(p.judged) / float64(p.maxJudgements)
}

func (p *Processor) TotalScore() float64 {
	return TotalScore(p.ComboProgress(), p.Accuracy(), p.AccuracyProgress(), p.bonusPortion)
}

// Mean hit error, late positive.
func (p *Processor) Mean() float64 {
	if p.hits == 0 {
		return 0
	}
	return p.sumOfDistance / float64(p.hits)
}

// Stdev is the sample standard deviation of the hit error.
func (p *Processor) Stdev() float64 {
	if p.hits < 2 {
		return 0
	}
	n := float64(p.hits)
	mean := p.sumOfDistance / n
	variance := (p.sumOfSquares - n*mean*mean) / (n - 1)
	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}

func (p *Processor) Score() Score {
	return Score{
		TotalScore: int64(math.Round(p.TotalScore())),
		Accuracy:   p.Accuracy(),
		MaxCombo:   p.maxCombo,
		Counts:     p.counts,
		MeanError:  p.Mean(),
		Stdev:      p.Stdev(),
	}
}
