package score

import (
	"testing"

	"git.lost.host/meutraa/hitbeat/internal/game"
)

func TestTally(t *testing.T) {
	perfect, good := &game.DefaultJudgements[0], &game.DefaultJudgements[1]
	tally := NewTally()

	tally.Hit(perfect)
	tally.Hit(good)
	tally.Hit(perfect)
	if tally.Score != 250 || tally.Combo != 3 || tally.MaxCombo != 3 {
		t.Fatalf("unexpected tally %+v", tally)
	}

	tally.Miss()
	if tally.Combo != 0 || tally.MaxCombo != 3 || tally.Misses != 1 || tally.Score != 250 {
		t.Fatalf("unexpected tally after miss %+v", tally)
	}

	tally.Hit(good)
	if tally.Combo != 1 || tally.MaxCombo != 3 {
		t.Fatalf("unexpected tally after recovery %+v", tally)
	}
	if tally.Counts[game.Perfect] != 2 || tally.Counts[game.Good] != 2 {
		t.Fatalf("unexpected counts %v", tally.Counts)
	}
}
