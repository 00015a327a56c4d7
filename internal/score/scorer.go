package score

import (
	"time"

	"git.lost.host/meutraa/hitbeat/internal/game"
)

type Scorer interface {
	// Position of a note on the field at song time at
	Position(n *game.Note, at time.Duration) float64

	// Distance from the judgement line of a note at song time at
	Distance(n *game.Note, at time.Duration) float64

	// Expired reports whether a note has scrolled past every judgement window
	Expired(n *game.Note, at time.Duration) bool

	// Judge the closest pending note in the input lane, resolving it if it is
	// inside a judgement window
	ApplyInputToChart(chart *game.Chart, input game.Input) Result
}

// Result of a single input. A nil Note means nothing was hit.
type Result struct {
	Note      *game.Note
	Judgement *game.Judgement
	Distance  float64
}

func (r Result) None() bool {
	return r.Note == nil
}
