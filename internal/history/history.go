package history

import (
	"time"

	"git.lost.host/meutraa/lanejudge/internal/game"
	"git.lost.host/meutraa/lanejudge/internal/judge"
	"git.lost.host/meutraa/lanejudge/internal/score"
	"git.lost.host/meutraa/lanejudge/internal/session"
)

type Scorer interface {
	Init(path string) error
	Deinit()

	// Save the state of this performance
	Save(chart *game.Chart, inputs []game.Input, cfg session.Config, result score.Score) error

	// Load up previous state for the chart
	Load(chart *game.Chart) ([]History, error)

	// Score replays a stored history against the chart
	Score(chart *game.Chart, history *History, cfg session.Config) score.Score
}

type History struct {
	ID          int64
	Sum         string
	Inputs      []game.Input
	Rate        float64
	Mode        judge.Mode
	PoolEnabled bool
	Config      *session.Config // nil for plays stored without their settings
	TotalScore  int64
	Accuracy    float64
	MaxCombo    int
	PlayedAt    time.Time
}
