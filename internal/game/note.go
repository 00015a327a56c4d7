package game

import (
	"time"
)

type Status uint8

const (
	Pending Status = iota
	Hit
	Missed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Hit:
		return "hit"
	case Missed:
		return "missed"
	}
	return "unknown"
}

type Note struct {
	Lane Direction
	Time time.Duration // The beat this note was spawned from

	// This is state
	Status     Status
	Tier       Tier          // Set when Status is Hit
	ResolvedAt time.Duration // When the note was hit or missed
}

func (note *Note) Pending() bool {
	return note.Status == Pending
}

// Resolve marks a pending note as hit with the given tier.
// It reports false, changing nothing, if the note was already resolved.
func (note *Note) Resolve(tier Tier, at time.Duration) bool {
	if note.Status != Pending {
		return false
	}
	note.Status = Hit
	note.Tier = tier
	note.ResolvedAt = at
	return true
}

// Miss marks a pending note as missed.
// It reports false, changing nothing, if the note was already resolved.
func (note *Note) Miss(at time.Duration) bool {
	if note.Status != Pending {
		return false
	}
	note.Status = Missed
	note.ResolvedAt = at
	return true
}
