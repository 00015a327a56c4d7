package score

import "git.lost.host/meutraa/hitbeat/internal/game"

// Tally is the running score of a session. It only changes through Hit and Miss.
type Tally struct {
	Score    int
	Combo    int
	MaxCombo int
	Misses   int
	Counts   map[game.Tier]int
}

func NewTally() *Tally {
	return &Tally{Counts: map[game.Tier]int{}}
}

func (t *Tally) Hit(j *game.Judgement) {
	t.Score += j.Reward
	t.Counts[j.Tier]++
	t.Combo++
	if t.Combo > t.MaxCombo {
		t.MaxCombo = t.Combo
	}
}

func (t *Tally) Miss() {
	t.Misses++
	t.Combo = 0
}
