// Package session runs a single play-through of a chart.
//
// A Session is driven by one caller: Advance once per frame and OnKey once
// per key-down edge, both with song time passed in. It does no locking, hosts
// that read input on another goroutine must serialise calls into it.
package session

import (
	"time"

	"git.lost.host/meutraa/hitbeat/internal/clock"
	"git.lost.host/meutraa/hitbeat/internal/game"
	"git.lost.host/meutraa/hitbeat/internal/score"
)

const (
	// DefaultGrace is how long after the last note spawns a session may end
	DefaultGrace = 5 * time.Second

	// FeedbackWindow is how long a resolved note is reported as recent
	FeedbackWindow = 300 * time.Millisecond
)

type Session struct {
	Chart  *game.Chart
	Scorer score.Scorer
	Grace  time.Duration

	tally   *score.Tally
	elapsed time.Duration
	inputs  []game.Input
}

func New(chart *game.Chart, scorer score.Scorer, grace time.Duration) *Session {
	return &Session{
		Chart:  chart,
		Scorer: scorer,
		Grace:  grace,
		tally:  score.NewTally(),
	}
}

// Advance moves the session to song time elapsed and misses every pending
// note that has scrolled past the last judgement window. The newly missed
// notes are returned.
func (s *Session) Advance(elapsed time.Duration) []*game.Note {
	if elapsed > s.elapsed {
		s.elapsed = elapsed
	}

	var missed []*game.Note
	for _, note := range s.Chart.Notes {
		if !note.Pending() {
			continue
		}
		if note.Time > s.elapsed {
			// Notes are in spawn order, nothing after this has spawned
			break
		}
		if s.Scorer.Expired(note, s.elapsed) && note.Miss(s.elapsed) {
			s.tally.Miss()
			missed = append(missed, note)
		}
	}
	return missed
}

// OnKey judges a key press. Presses that hit nothing leave the score and
// combo untouched, presses on an unknown lane are ignored.
func (s *Session) OnKey(input game.Input) score.Result {
	if !input.Lane.Valid() {
		return score.Result{}
	}
	s.inputs = append(s.inputs, input)

	result := s.Scorer.ApplyInputToChart(s.Chart, input)
	if !result.None() {
		s.tally.Hit(result.Judgement)
	}
	return result
}

// IsComplete is true once the last note spawned more than Grace ago and
// every note is hit or missed.
func (s *Session) IsComplete() bool {
	return s.elapsed > s.Chart.Last()+s.Grace && s.Chart.Pending() == 0
}

func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

func (s *Session) Tally() score.Tally {
	t := *s.tally
	t.Counts = make(map[game.Tier]int, len(s.tally.Counts))
	for k, v := range s.tally.Counts {
		t.Counts[k] = v
	}
	return t
}

// Inputs returns every judged key press in the order it arrived
func (s *Session) Inputs() []game.Input {
	ins := make([]game.Input, len(s.inputs))
	copy(ins, s.inputs)
	return ins
}

// Replay feeds recorded inputs through a session, advancing to each input's
// time before it is judged and finally to end.
func Replay(s *Session, inputs []game.Input, end time.Duration) {
	var c clock.Manual
	for _, input := range inputs {
		c.Set(input.Time)
		s.Advance(c.Elapsed())
		s.OnKey(input)
	}
	c.Set(end)
	s.Advance(c.Elapsed())
}
