package theme

import "git.lost.host/meutraa/hitbeat/internal/game"

type Theme interface {
	RenderNote(lane game.Direction) string
	RenderTarget(lane game.Direction, active bool) string
	RenderJudgement(tier game.Tier) string
	RenderMiss() string
	RenderHitLine(width int) string
	RenderText(s string) string
	RenderTitle(s string) string
}
