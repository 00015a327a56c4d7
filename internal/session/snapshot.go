package session

import (
	"git.lost.host/meutraa/hitbeat/internal/game"
)

type NoteView struct {
	Lane     game.Direction
	Position float64
	Status   game.Status
	Tier     game.Tier
	Recent   bool // Resolved within the feedback window
}

type Snapshot struct {
	Notes    []NoteView
	Score    int
	Combo    int
	MaxCombo int
	Misses   int
	Complete bool
}

// Snapshot is the read-only state a renderer needs for the current frame
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Notes:    make([]NoteView, len(s.Chart.Notes)),
		Score:    s.tally.Score,
		Combo:    s.tally.Combo,
		MaxCombo: s.tally.MaxCombo,
		Misses:   s.tally.Misses,
		Complete: s.IsComplete(),
	}
	for i, n := range s.Chart.Notes {
		snap.Notes[i] = NoteView{
			Lane:     n.Lane,
			Position: s.Scorer.Position(n, s.elapsed),
			Status:   n.Status,
			Tier:     n.Tier,
			Recent:   !n.Pending() && s.elapsed-n.ResolvedAt < FeedbackWindow,
		}
	}
	return snap
}
