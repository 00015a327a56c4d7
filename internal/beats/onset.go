package beats

import (
	"math"
	"time"

	"github.com/faiface/beep"

	"git.lost.host/meutraa/hitbeat/internal/audio"
)

// OnsetParams tune the onset envelope and its peak picking
type OnsetParams struct {
	Hop     int // samples per envelope frame
	PreMax  time.Duration
	PostMax time.Duration
	PreAvg  time.Duration
	PostAvg time.Duration
	Delta   float64 // how far a peak must rise above the local mean
	Wait    time.Duration
}

var DefaultOnsetParams = OnsetParams{
	Hop:     512,
	PreMax:  30 * time.Millisecond,
	PostMax: 0,
	PreAvg:  100 * time.Millisecond,
	PostAvg: 100 * time.Millisecond,
	Delta:   0.07,
	Wait:    30 * time.Millisecond,
}

// DefaultDetector finds onsets in decoded audio from rises in frame energy
type DefaultDetector struct {
	Params *OnsetParams
}

func (d *DefaultDetector) Detect(path string) ([]time.Duration, error) {
	streamer, format, err := audio.Decode(path)
	if nil != err {
		return nil, err
	}
	defer streamer.Close()

	params := DefaultOnsetParams
	if nil != d.Params {
		params = *d.Params
	}
	onsets := DetectOnsets(streamer, format.SampleRate, params)
	if err := streamer.Err(); nil != err {
		return nil, err
	}
	return onsets, nil
}

// envelope returns the onset strength of each hop-sized frame, scaled to [0, 1]
func envelope(s beep.Streamer, hop int) []float64 {
	buf := make([][2]float64, hop)
	levels := []float64{}
	for {
		n, ok := s.Stream(buf)
		if n > 0 {
			energy := 0.0
			for _, frame := range buf[:n] {
				mono := (frame[0] + frame[1]) / 2
				energy += mono * mono
			}
			levels = append(levels, math.Log1p(100*math.Sqrt(energy/float64(hop))))
		}
		if !ok {
			break
		}
	}

	flux := make([]float64, len(levels))
	peak := 0.0
	for i := 1; i < len(levels); i++ {
		if rise := levels[i] - levels[i-1]; rise > 0 {
			flux[i] = rise
			if rise > peak {
				peak = rise
			}
		}
	}
	if peak == 0 {
		return flux
	}
	for i := range flux {
		flux[i] /= peak
	}
	return flux
}

func frames(d time.Duration, rate beep.SampleRate, hop int) int {
	return int(math.Round(float64(rate.N(d)) / float64(hop)))
}

// DetectOnsets reads s to the end and returns the time of every onset
func DetectOnsets(s beep.Streamer, rate beep.SampleRate, p OnsetParams) []time.Duration {
	env := envelope(s, p.Hop)
	peaks := peakPick(env,
		frames(p.PreMax, rate, p.Hop),
		frames(p.PostMax, rate, p.Hop)+1,
		frames(p.PreAvg, rate, p.Hop),
		frames(p.PostAvg, rate, p.Hop)+1,
		p.Delta,
		frames(p.Wait, rate, p.Hop),
	)
	onsets := make([]time.Duration, len(peaks))
	for i, frame := range peaks {
		onsets[i] = rate.D(frame * p.Hop)
	}
	return onsets
}

// peakPick returns the frames n where x[n] is the maximum of
// x[n-preMax:n+postMax], at least delta above the mean of x[n-preAvg:n+postAvg],
// and more than wait frames after the previous peak.
func peakPick(x []float64, preMax, postMax, preAvg, postAvg int, delta float64, wait int) []int {
	peaks := []int{}
	last := -wait - 1
	for n := range x {
		if x[n] <= 0 || n-last <= wait {
			continue
		}

		isMax := true
		for i := clamp(n-preMax, len(x)); i < clamp(n+postMax, len(x)); i++ {
			if x[i] > x[n] {
				isMax = false
				break
			}
		}
		if !isMax {
			continue
		}

		lo, hi := clamp(n-preAvg, len(x)), clamp(n+postAvg, len(x))
		sum := 0.0
		for _, v := range x[lo:hi] {
			sum += v
		}
		if x[n] < sum/float64(hi-lo)+delta {
			continue
		}

		peaks = append(peaks, n)
		last = n
	}
	return peaks
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
