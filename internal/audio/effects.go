package audio

import (
	"fmt"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Effects are short sounds mixed over the song. They are decoded once into
// memory at the speaker's sample rate. A nil *Effects plays nothing.
type Effects struct {
	rate   beep.SampleRate
	sounds map[string]*beep.Buffer
}

func NewEffects(rate beep.SampleRate) *Effects {
	return &Effects{rate: rate, sounds: map[string]*beep.Buffer{}}
}

// Load decodes the file at path and keeps it under name
func (e *Effects) Load(name, path string) error {
	streamer, format, err := Decode(path)
	if nil != err {
		return err
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != e.rate {
		s = beep.Resample(4, format.SampleRate, e.rate, streamer)
	}
	format.SampleRate = e.rate
	buffer := beep.NewBuffer(format)
	buffer.Append(s)
	if err := streamer.Err(); nil != err {
		return fmt.Errorf("unable to decode effect %v: %w", path, err)
	}
	e.sounds[name] = buffer
	return nil
}

func (e *Effects) Has(name string) bool {
	if nil == e {
		return false
	}
	_, ok := e.sounds[name]
	return ok
}

// Streamer returns a fresh streamer over the sound kept under name
func (e *Effects) Streamer(name string) (beep.Streamer, bool) {
	if nil == e {
		return nil, false
	}
	buffer, ok := e.sounds[name]
	if !ok {
		return nil, false
	}
	return buffer.Streamer(0, buffer.Len()), true
}

func (e *Effects) Play(name string) {
	if s, ok := e.Streamer(name); ok {
		speaker.Play(s)
	}
}
