package game

import "time"

type Chart struct {
	Notes      []*Note
	NoteCount  int64
	LaneCounts [NLanes]int64
}

func NewChart(notes []*Note) *Chart {
	c := &Chart{Notes: notes, NoteCount: int64(len(notes))}
	for _, n := range notes {
		c.LaneCounts[n.Lane]++
	}
	return c
}

// Last returns the spawn time of the final note, or 0 for an empty chart
func (c *Chart) Last() time.Duration {
	if len(c.Notes) == 0 {
		return 0
	}
	return c.Notes[len(c.Notes)-1].Time
}

// Pending counts the notes that are neither hit nor missed
func (c *Chart) Pending() int {
	count := 0
	for _, n := range c.Notes {
		if n.Pending() {
			count++
		}
	}
	return count
}
