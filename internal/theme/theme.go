package theme

import "git.lost.host/meutraa/lanejudge/internal/game"

type Theme interface {
	RenderJudgement(r game.HitResult) string
	RenderHealth(health float64, width int) string
}
