package input

import (
	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/hitbeat/internal/game"
)

type Action uint8

const (
	None Action = iota
	Press       // A lane key went down
	Quit
	Confirm
)

type Event struct {
	Action Action
	Lane   game.Direction
	Rune   rune
}

// KeyMapper maps alternative character keys to lanes
type KeyMapper interface {
	KeyLane(r rune) (game.Direction, bool)
}

var arrows = map[keyboard.Key]game.Direction{
	keyboard.KeyArrowLeft:  game.Left,
	keyboard.KeyArrowUp:    game.Up,
	keyboard.KeyArrowDown:  game.Down,
	keyboard.KeyArrowRight: game.Right,
}

func Translate(ev keyboard.KeyEvent, mapper KeyMapper) Event {
	if lane, ok := arrows[ev.Key]; ok {
		return Event{Action: Press, Lane: lane}
	}
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Event{Action: Quit}
	case keyboard.KeySpace, keyboard.KeyEnter:
		return Event{Action: Confirm}
	}
	if nil != mapper && ev.Rune != 0 {
		if lane, ok := mapper.KeyLane(ev.Rune); ok {
			return Event{Action: Press, Lane: lane, Rune: ev.Rune}
		}
	}
	return Event{Action: None, Rune: ev.Rune}
}

// Reader delivers key-down edges from the terminal. Held keys repeat at the
// terminal's rate, not once per frame.
type Reader struct {
	keys   <-chan keyboard.KeyEvent
	mapper KeyMapper
}

func Open(mapper KeyMapper) (*Reader, error) {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, err
	}
	return &Reader{keys: keys, mapper: mapper}, nil
}

func NewReader(keys <-chan keyboard.KeyEvent, mapper KeyMapper) *Reader {
	return &Reader{keys: keys, mapper: mapper}
}

func (r *Reader) Close() error {
	return keyboard.Close()
}

// Drain returns the events queued since the last call without blocking
func (r *Reader) Drain() []Event {
	events := []Event{}
	for i, n := 0, len(r.keys); i < n; i++ {
		ev := <-r.keys
		if nil != ev.Err {
			continue
		}
		events = append(events, Translate(ev, r.mapper))
	}
	return events
}

// Next blocks until the next key, whatever it maps to
func (r *Reader) Next() Event {
	for ev := range r.keys {
		if nil != ev.Err {
			continue
		}
		return Translate(ev, r.mapper)
	}
	return Event{Action: Quit}
}

// Wait blocks until the next event that is not None
func (r *Reader) Wait() Event {
	for {
		if e := r.Next(); e.Action != None {
			return e
		}
	}
}
