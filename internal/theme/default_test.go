package theme

import (
	"strings"
	"testing"

	"git.lost.host/meutraa/hitbeat/internal/game"
)

func TestRenderKeepsText(t *testing.T) {
	th := &DefaultTheme{}
	for _, lane := range game.Directions {
		if !strings.Contains(th.RenderNote(lane), syms[lane]) {
			t.Errorf("note for %v lost its symbol", lane)
		}
		if !strings.Contains(th.RenderTarget(lane, true), syms[lane]) {
			t.Errorf("active target for %v lost its symbol", lane)
		}
		if !strings.Contains(th.RenderTarget(lane, false), targetSyms[lane]) {
			t.Errorf("target for %v lost its symbol", lane)
		}
	}
	if th.RenderNote(game.Direction(8)) != " " {
		t.Error("expected a blank for an invalid lane")
	}
	if !strings.Contains(th.RenderJudgement(game.Perfect), "PERFECT!") ||
		!strings.Contains(th.RenderJudgement(game.Good), "GOOD!") ||
		th.RenderJudgement(game.TierNone) != "" {
		t.Error("unexpected judgement text")
	}
	if !strings.Contains(th.RenderMiss(), "MISS!") {
		t.Error("unexpected miss text")
	}
	if !strings.Contains(th.RenderHitLine(4), "────") {
		t.Error("unexpected hit line")
	}
}
