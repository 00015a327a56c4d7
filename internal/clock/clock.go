// Package clock provides the song time base shared by chart scrolling and
// judgement. Every clock starts near zero and never goes backwards.
package clock

import (
	"time"
)

type Clock interface {
	Elapsed() time.Duration
}

// Wall tracks wall time since it was started
type Wall struct {
	start time.Time
	now   func() time.Time
	last  time.Duration
}

func NewWall() *Wall {
	return newWall(time.Now)
}

func newWall(now func() time.Time) *Wall {
	return &Wall{start: now(), now: now}
}

func (w *Wall) Elapsed() time.Duration {
	d := w.now().Sub(w.start)
	if d > w.last {
		w.last = d
	}
	return w.last
}

// Positioner reports how far into a track playback is
type Positioner interface {
	Position() time.Duration
}

// StallTimeout is how long a started track may report the same position
// before it is taken to have stopped
const StallTimeout = 250 * time.Millisecond

type lengther interface {
	Len() time.Duration
}

// Stream follows the playback position of an audio track. Once the track
// stops advancing, at its end or after StallTimeout, wall time carries on
// from the last position it reported.
type Stream struct {
	source Positioner
	length time.Duration // 0 when the source does not know its length
	now    func() time.Time
	last   time.Duration
	pos    time.Duration
	since  time.Time // when pos last changed
}

func NewStream(source Positioner) *Stream {
	return newStream(source, time.Now)
}

func newStream(source Positioner, now func() time.Time) *Stream {
	s := &Stream{source: source, now: now, since: now()}
	if l, ok := source.(lengther); ok {
		s.length = l.Len()
	}
	return s
}

func (s *Stream) Elapsed() time.Duration {
	now := s.now()
	d := s.source.Position()
	if d != s.pos {
		s.pos, s.since = d, now
	} else if s.stopped(now) {
		d += now.Sub(s.since)
	}
	if d > s.last {
		s.last = d
	}
	return s.last
}

func (s *Stream) stopped(now time.Time) bool {
	if s.pos <= 0 {
		// Not started yet
		return false
	}
	if s.length > 0 && s.pos >= s.length {
		return true
	}
	return now.Sub(s.since) >= StallTimeout
}

// Manual is moved by hand, for replays and tests
type Manual struct {
	elapsed time.Duration
}

func (m *Manual) Elapsed() time.Duration {
	return m.elapsed
}

// Set moves the clock to d, unless that would move it backwards
func (m *Manual) Set(d time.Duration) {
	if d > m.elapsed {
		m.elapsed = d
	}
}

func (m *Manual) Add(d time.Duration) {
	m.Set(m.elapsed + d)
}
