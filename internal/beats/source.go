// Package beats finds the onsets a chart is generated from.
package beats

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/hitbeat/internal/audio"
)

var ErrNoBeats = errors.New("no beats detected")

// FallbackCount beats are spread evenly from FallbackStart to FallbackEnd
// when a track cannot be analysed.
const (
	FallbackCount = 30
	FallbackStart = 1 * time.Second
	FallbackEnd   = 60 * time.Second
)

type Detector interface {
	// Detect returns the ascending onset times of a track
	Detect(path string) ([]time.Duration, error)
}

// Source picks a detector by file extension and never fails: anything that
// goes wrong is logged and answered with the fallback beats.
type Source struct {
	Audio  Detector
	MIDI   Detector
	Logger *slog.Logger
}

func NewSource(logger *slog.Logger) *Source {
	return &Source{
		Audio:  &DefaultDetector{},
		MIDI:   &MIDIDetector{},
		Logger: logger,
	}
}

func (s *Source) logger() *slog.Logger {
	if nil == s.Logger {
		return slog.Default()
	}
	return s.Logger
}

func (s *Source) detector(path string) (Detector, error) {
	if audio.Supported(path) {
		return s.Audio, nil
	}
	if IsMIDI(path) {
		return s.MIDI, nil
	}
	return nil, fmt.Errorf("%v: %w", path, audio.ErrUnsupported)
}

// DetectBeats returns the beats of the track at path. An empty path selects
// the built-in beat pattern.
func (s *Source) DetectBeats(path string) []time.Duration {
	log := s.logger()
	if path == "" {
		log.Info("no song selected, using the default beat pattern")
		return Fallback()
	}

	d, err := s.detector(path)
	if nil == err {
		var beats []time.Duration
		beats, err = d.Detect(path)
		if nil == err && len(beats) == 0 {
			err = ErrNoBeats
		}
		if nil == err {
			log.Info("detected beats", "path", path, "count", len(beats))
			return beats
		}
	}

	log.Warn("unable to analyse song, using the default beat pattern", "path", path, "err", err)
	return Fallback()
}

// Fallback is the built-in beat pattern
func Fallback() []time.Duration {
	beats := make([]time.Duration, FallbackCount)
	span := (FallbackEnd - FallbackStart).Seconds()
	for i := range beats {
		s := FallbackStart.Seconds() + float64(i)*span/float64(FallbackCount-1)
		beats[i] = time.Duration(s * float64(time.Second))
	}
	return beats
}

func IsMIDI(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		return true
	}
	return false
}

// Supported reports whether some detector understands the file
func Supported(path string) bool {
	return audio.Supported(path) || IsMIDI(path)
}
