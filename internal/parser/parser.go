package parser

import "git.lost.host/meutraa/lanejudge/internal/game"

type Parser interface {
	Parse(file string) ([]*game.Chart, error)
}
