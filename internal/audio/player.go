package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Player plays one track through the speaker and reports its position,
// which is the song time base when audio is available.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
}

func NewPlayer(path string) (*Player, error) {
	streamer, format, err := Decode(path)
	if nil != err {
		return nil, err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		streamer.Close()
		return nil, err
	}
	return &Player{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer},
	}, nil
}

func (p *Player) Play() {
	speaker.Play(p.ctrl)
}

// Rewind stops playback and seeks back to the start of the track
func (p *Player) Rewind() error {
	speaker.Clear()
	speaker.Lock()
	defer speaker.Unlock()
	return p.streamer.Seek(0)
}

func (p *Player) Position() time.Duration {
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

func (p *Player) SampleRate() beep.SampleRate {
	return p.format.SampleRate
}

func (p *Player) Len() time.Duration {
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *Player) Close() error {
	speaker.Clear()
	return p.streamer.Close()
}
