package game

import "time"

// Tier is the accuracy of a hit
type Tier uint8

const (
	TierNone Tier = iota
	Perfect
	Good
)

func (t Tier) String() string {
	switch t {
	case Perfect:
		return "perfect"
	case Good:
		return "good"
	}
	return "none"
}

type Judgement struct {
	Tier     Tier
	Distance float64 // Largest distance from the line that still earns this tier
	Reward   int
	Name     string
}

// DefaultJudgements are ordered from the tightest window to the widest.
// The last entry is the window in which a press can still score a note.
var DefaultJudgements = []Judgement{
	{Tier: Perfect, Distance: 30, Reward: 100, Name: "PERFECT!"},
	{Tier: Good, Distance: 50, Reward: 50, Name: "GOOD!"},
}

// Field describes how notes scroll toward the judgement line.
// Distances are in field units, the renderer scales them to rows.
type Field struct {
	ScrollSpeed float64 // units per second
	Line        float64 // position of the judgement line, notes spawn at 0
}

var DefaultField = Field{
	ScrollSpeed: 300,
	Line:        500,
}

// Position of a note spawned at spawn, at song time elapsed
func (f Field) Position(spawn, elapsed time.Duration) float64 {
	return (elapsed - spawn).Seconds() * f.ScrollSpeed
}

// TravelTime is how long a note takes to scroll from spawn to the line
func (f Field) TravelTime() time.Duration {
	return time.Duration(f.Line / f.ScrollSpeed * float64(time.Second))
}
