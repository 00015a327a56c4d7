package beats

import (
	"fmt"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// MIDIDetector takes every note start of a standard MIDI file as an onset.
// Note starts closer together than Merge, such as chords, count once.
type MIDIDetector struct {
	Merge time.Duration
}

const defaultMerge = 30 * time.Millisecond

func (d *MIDIDetector) Detect(path string) ([]time.Duration, error) {
	starts := []time.Duration{}
	rd := smf.ReadTracks(path).Do(func(ev smf.TrackEvent) {
		var channel, key, velocity uint8
		if midi.Message(ev.Message).GetNoteStart(&channel, &key, &velocity) {
			starts = append(starts, time.Duration(ev.AbsMicroSeconds)*time.Microsecond)
		}
	})
	if err := rd.Error(); nil != err {
		return nil, fmt.Errorf("unable to read midi %v: %w", path, err)
	}

	merge := d.Merge
	if merge == 0 {
		merge = defaultMerge
	}
	return mergeOnsets(starts, merge), nil
}

// mergeOnsets sorts times and drops any within merge of the onset before it
func mergeOnsets(times []time.Duration, merge time.Duration) []time.Duration {
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	onsets := []time.Duration{}
	for _, t := range times {
		if len(onsets) > 0 && t-onsets[len(onsets)-1] < merge {
			continue
		}
		onsets = append(onsets, t)
	}
	return onsets
}
