package theme

import (
	"strings"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

// DefaultTheme renders judgement names for a terminal. Plain drops the
// escape codes, for output that is not a terminal.
type DefaultTheme struct {
	Plain bool
}

func (t *DefaultTheme) RenderJudgement(r game.HitResult) string {
	name := r.String()
	if t.Plain {
		return name
	}
	color, ok := judgementColors[r]
	if !ok {
		return name
	}
	return color + name + reset
}

// RenderHealth draws a bar of width cells filled in proportion to health.
func (t *DefaultTheme) RenderHealth(health float64, width int) string {
	filled := int(health*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat(healthSym, filled) + strings.Repeat(emptySym, width-filled)
	if t.Plain {
		return bar
	}
	color := "\033[1;32m"
	if health < 0.3 {
		color = "\033[1;31m"
	}
	return color + bar + reset
}

const (
	reset     = "\033[0m"
	healthSym = "█"
	emptySym  = "░"
)

var judgementColors = map[game.HitResult]string{
	game.Perfect: "\033[38;5;153m",
	game.Great:   "\033[1;36m",
	game.Good:    "\033[1;32m",
	game.Ok:      "\033[1;33m",
	game.Meh:     "\033[38;5;208m",
	game.Miss:    "\033[1;31m",
	game.Pool:    "\033[1;35m",
}
