package session

import (
	"math/rand"
	"testing"
	"time"

	"git.lost.host/meutraa/hitbeat/internal/game"
)

func TestReplayDeterministic(t *testing.T) {
	live := newRandomSession(t, 7)
	rng := rand.New(rand.NewSource(3))
	end := live.Chart.Last() + live.Grace + time.Second

	// Play along, pressing each note's lane near its line crossing
	travel := game.DefaultField.TravelTime()
	for _, n := range live.Chart.Notes {
		at := n.Time + travel + time.Duration(rng.Intn(200)-100)*time.Millisecond
		live.Advance(at)
		live.OnKey(game.Input{Lane: n.Lane, Time: at})
	}
	live.Advance(end)

	expected := live.Tally()
	for i := 0; i < 3; i++ {
		replayed := newRandomSession(t, 7)
		Replay(replayed, live.Inputs(), end)
		if !sameTally(replayed.Tally(), expected) {
			t.Fatalf("replay %v scored %+v, live scored %+v", i, replayed.Tally(), expected)
		}
		for j, n := range replayed.Chart.Notes {
			if n.Status != live.Chart.Notes[j].Status || n.Tier != live.Chart.Notes[j].Tier {
				t.Fatalf("replay %v: note %v differs", i, j)
			}
		}
	}
	if expected.Score == 0 {
		t.Fatal("expected the scripted play to score")
	}
}

func TestSnapshot(t *testing.T) {
	hit := &game.Note{Lane: game.Left, Time: ms(1000)}
	coming := &game.Note{Lane: game.Right, Time: ms(2000)}
	s := newSession(hit, coming)

	s.Advance(ms(3000))
	s.OnKey(game.Input{Lane: game.Left, Time: ms(3000)})
	s.Advance(ms(3100))

	snap := s.Snapshot()
	if len(snap.Notes) != 2 || snap.Score != 100 || snap.Combo != 1 || snap.MaxCombo != 1 || snap.Complete {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if v := snap.Notes[0]; v.Status != game.Hit || v.Tier != game.Perfect || !v.Recent {
		t.Errorf("unexpected hit note view %+v", v)
	}
	if v := snap.Notes[1]; v.Lane != game.Right || v.Status != game.Pending || v.Recent {
		t.Errorf("unexpected pending note view %+v", v)
	}
	if p := snap.Notes[1].Position; p < 109.99 || p > 110.01 {
		t.Errorf("expected position 110, got %v", p)
	}

	s.Advance(ms(3400))
	if s.Snapshot().Notes[0].Recent {
		t.Error("hit feedback outlived its window")
	}
}
