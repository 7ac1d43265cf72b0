package theme

import (
	"strings"
	"testing"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

func TestRenderJudgement(t *testing.T) {
	plain := &DefaultTheme{Plain: true}
	colored := &DefaultTheme{}
	for _, r := range game.Results {
		if out := plain.RenderJudgement(r); out != r.String() {
			t.Errorf("plain %v: %q", r, out)
		}
		out := colored.RenderJudgement(r)
		if !strings.Contains(out, r.String()) || !strings.HasSuffix(out, reset) {
			t.Errorf("colored %v: %q", r, out)
		}
	}
}

func TestRenderHealth(t *testing.T) {
	th := &DefaultTheme{Plain: true}
	tests := map[float64]string{
		0:    "░░░░",
		0.5:  "██░░",
		1:    "████",
		0.99: "████",
	}
	for health, expected := range tests {
		if out := th.RenderHealth(health, 4); out != expected {
			t.Errorf("RenderHealth(%v) = %q, want %q", health, out, expected)
		}
	}
}
