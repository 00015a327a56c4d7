package game

import (
	"sort"
	"time"
)

// BalanceThreshold is the largest allowed difference between the most
// and least used lanes of a chart.
const BalanceThreshold = 3

// Rand is the source of lane choices. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type Generator struct {
	Rand Rand
}

func NewGenerator(r Rand) *Generator {
	return &Generator{Rand: r}
}

// Generate assigns a lane to every beat, keeping lane usage balanced.
// Every note starts out Pending.
func (g *Generator) Generate(beats []time.Duration) *Chart {
	times := make([]time.Duration, len(beats))
	copy(times, beats)
	sort.SliceStable(times, func(i, j int) bool { return times[i] < times[j] })

	var counts [NLanes]int
	notes := make([]*Note, 0, len(times))
	for _, t := range times {
		lane := g.pick(&counts)
		counts[lane]++
		notes = append(notes, &Note{Lane: lane, Time: t})
	}
	return NewChart(notes)
}

func (g *Generator) pick(counts *[NLanes]int) Direction {
	min, max := counts[0], counts[0]
	for _, c := range counts[1:] {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}

	// Picking the busiest lane here would push the skew past the threshold
	if max-min >= BalanceThreshold {
		least := make([]Direction, 0, NLanes)
		for i, c := range counts {
			if c == min {
				least = append(least, Direction(i))
			}
		}
		return least[g.Rand.Intn(len(least))]
	}
	return Directions[g.Rand.Intn(NLanes)]
}
