package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"git.lost.host/meutraa/hitbeat/internal/game"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(lane game.Direction) string {
	if !lane.Valid() {
		return " "
	}
	return laneStyles[lane].Render(syms[lane])
}

func (t *DefaultTheme) RenderTarget(lane game.Direction, active bool) string {
	if !lane.Valid() {
		return " "
	}
	if active {
		return activeStyles[lane].Render(syms[lane])
	}
	return laneStyles[lane].Faint(true).Render(targetSyms[lane])
}

func (t *DefaultTheme) RenderJudgement(tier game.Tier) string {
	switch tier {
	case game.Perfect:
		return perfectStyle.Render("PERFECT!")
	case game.Good:
		return goodStyle.Render("GOOD!")
	}
	return ""
}

func (t *DefaultTheme) RenderMiss() string {
	return missStyle.Render("MISS!")
}

func (t *DefaultTheme) RenderHitLine(width int) string {
	return lineStyle.Render(strings.Repeat("─", width))
}

func (t *DefaultTheme) RenderText(s string) string {
	return textStyle.Render(s)
}

func (t *DefaultTheme) RenderTitle(s string) string {
	return titleStyle.Render(s)
}

var (
	syms       = [game.NLanes]string{"◀", "▲", "▼", "▶"}
	targetSyms = [game.NLanes]string{"◁", "△", "▽", "▷"}

	laneColors = [game.NLanes]lipgloss.Color{
		"12", // left blue
		"10", // up green
		"9",  // down red
		"11", // right yellow
	}
	laneStyles   [game.NLanes]lipgloss.Style
	activeStyles [game.NLanes]lipgloss.Style

	perfectStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	goodStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	missStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	lineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

func init() {
	for i, c := range laneColors {
		laneStyles[i] = lipgloss.NewStyle().Foreground(c)
		activeStyles[i] = lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(c)
	}
}
