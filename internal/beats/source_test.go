package beats

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeDetector struct {
	beats []time.Duration
	err   error
	calls int
}

func (f *fakeDetector) Detect(path string) ([]time.Duration, error) {
	f.calls++
	return f.beats, f.err
}

func isFallback(beats []time.Duration) bool {
	fb := Fallback()
	if len(beats) != len(fb) {
		return false
	}
	for i := range beats {
		if beats[i] != fb[i] {
			return false
		}
	}
	return true
}

func TestFallback(t *testing.T) {
	beats := Fallback()
	if len(beats) != 30 {
		t.Fatalf("expected 30 beats, got %v", len(beats))
	}
	if beats[0] != time.Second || beats[29] != 60*time.Second {
		t.Fatalf("expected beats from 1s to 60s, got %v to %v", beats[0], beats[29])
	}
	step := (59 * time.Second) / 29
	for i := 1; i < len(beats); i++ {
		gap := beats[i] - beats[i-1]
		if gap-step > time.Microsecond || step-gap > time.Microsecond {
			t.Fatalf("uneven gap %v between beats %v and %v", gap, i-1, i)
		}
	}
}

func TestDetectBeats(t *testing.T) {
	found := []time.Duration{time.Second, 2 * time.Second}
	tests := []struct {
		name     string
		path     string
		audio    *fakeDetector
		midi     *fakeDetector
		fallback bool
	}{
		{"no song", "", &fakeDetector{beats: found}, &fakeDetector{}, true},
		{"unsupported", "chart.sm", &fakeDetector{beats: found}, &fakeDetector{}, true},
		{"decode failure", "song.mp3", &fakeDetector{err: errors.New("bad frame")}, &fakeDetector{}, true},
		{"silence", "song.ogg", &fakeDetector{beats: []time.Duration{}}, &fakeDetector{}, true},
		{"audio", "song.wav", &fakeDetector{beats: found}, &fakeDetector{}, false},
		{"midi", "song.MID", &fakeDetector{}, &fakeDetector{beats: found}, false},
	}

	for _, test := range tests {
		src := &Source{Audio: test.audio, MIDI: test.midi, Logger: quiet}
		beats := src.DetectBeats(test.path)
		if isFallback(beats) != test.fallback {
			t.Errorf("%v: expected fallback %v, got %v", test.name, test.fallback, beats)
			continue
		}
		if !test.fallback && (len(beats) != 2 || beats[1] != 2*time.Second) {
			t.Errorf("%v: unexpected beats %v", test.name, beats)
		}
	}
}

func TestDetectBeatsMissingFile(t *testing.T) {
	src := NewSource(quiet)
	if beats := src.DetectBeats("/nonexistent/song.mp3"); !isFallback(beats) {
		t.Fatalf("expected the fallback for a missing file, got %v", beats)
	}
}
