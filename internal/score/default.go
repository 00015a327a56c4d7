package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/hitbeat/internal/game"
)

type DefaultScorer struct {
	Field      game.Field
	Judgements []game.Judgement // Tightest window first
}

func NewScorer(field game.Field, judgements []game.Judgement) *DefaultScorer {
	js := make([]game.Judgement, len(judgements))
	copy(js, judgements)
	return &DefaultScorer{Field: field, Judgements: js}
}

// Window is the widest distance that can still be judged
func (s *DefaultScorer) Window() float64 {
	if len(s.Judgements) == 0 {
		return 0
	}
	return s.Judgements[len(s.Judgements)-1].Distance
}

func (s *DefaultScorer) Position(n *game.Note, at time.Duration) float64 {
	return s.Field.Position(n.Time, at)
}

func (s *DefaultScorer) Distance(n *game.Note, at time.Duration) float64 {
	return math.Abs(s.Field.Position(n.Time, at) - s.Field.Line)
}

func (s *DefaultScorer) Expired(n *game.Note, at time.Duration) bool {
	return s.Field.Position(n.Time, at) > s.Field.Line+s.Window()
}

func (s *DefaultScorer) judge(d float64) *game.Judgement {
	for i := range s.Judgements {
		if d <= s.Judgements[i].Distance {
			return &s.Judgements[i]
		}
	}
	return nil
}

func (s *DefaultScorer) ApplyInputToChart(chart *game.Chart, input game.Input) Result {
	if !input.Lane.Valid() {
		return Result{}
	}

	var closestNote *game.Note
	distance := math.Inf(1)

	for _, note := range chart.Notes {
		if !note.Pending() || note.Lane != input.Lane {
			continue
		}
		d := s.Distance(note, input.Time)
		if d < distance {
			distance = d
			closestNote = note
		} else if nil != closestNote {
			// already found the closest, and this d is >= distance
			break
		}
	}

	if nil == closestNote {
		return Result{}
	}
	judgement := s.judge(distance)
	if nil == judgement {
		return Result{}
	}
	closestNote.Resolve(judgement.Tier, input.Time)
	return Result{Note: closestNote, Judgement: judgement, Distance: distance}
}
