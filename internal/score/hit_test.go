package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/hitbeat/internal/game"
)

// The line is crossed 2s after a note spawns
var testField = game.Field{ScrollSpeed: 100, Line: 200}

func newTestScorer() *DefaultScorer {
	return NewScorer(testField, game.DefaultJudgements)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

type hitTest struct {
	input  game.Input
	tier   game.Tier
	reward int
}

// A single left note spawned at 2s reaches the line at 4s
var hitTests = []hitTest{
	{game.Input{Lane: game.Left, Time: ms(3800)}, game.Perfect, 100}, // 20 before
	{game.Input{Lane: game.Left, Time: ms(4200)}, game.Perfect, 100}, // 20 after
	{game.Input{Lane: game.Left, Time: ms(4000)}, game.Perfect, 100},
	{game.Input{Lane: game.Left, Time: ms(4450)}, game.Good, 50}, // 45 after
	{game.Input{Lane: game.Left, Time: ms(3550)}, game.Good, 50}, // 45 before
	{game.Input{Lane: game.Left, Time: ms(4600)}, game.TierNone, 0}, // 60 after
	{game.Input{Lane: game.Left, Time: ms(3400)}, game.TierNone, 0}, // 60 before
	{game.Input{Lane: game.Right, Time: ms(4000)}, game.TierNone, 0},
	{game.Input{Lane: game.Direction(9), Time: ms(4000)}, game.TierNone, 0},
}

func TestApplyInputToChart(t *testing.T) {
	scorer := newTestScorer()
	for _, test := range hitTests {
		note := &game.Note{Lane: game.Left, Time: 2 * time.Second}
		chart := game.NewChart([]*game.Note{note})

		result := scorer.ApplyInputToChart(chart, test.input)
		if test.tier == game.TierNone {
			if !result.None() || !note.Pending() {
				t.Log("Input   ", test.input)
				t.Log("Result  ", result)
				t.Fail()
			}
			continue
		}
		if result.None() || result.Note != note || result.Judgement.Tier != test.tier ||
			result.Judgement.Reward != test.reward {
			t.Log("Input   ", test.input)
			t.Log("Result  ", result)
			t.Log("Expected", test.tier, test.reward)
			t.Fail()
			continue
		}
		if note.Status != game.Hit || note.Tier != test.tier || note.ResolvedAt != test.input.Time {
			t.Log("Note    ", note)
			t.Fail()
		}
	}
}

func TestApplyInputResolvesClosestOnly(t *testing.T) {
	scorer := newTestScorer()
	near := &game.Note{Lane: game.Down, Time: ms(2000)}
	far := &game.Note{Lane: game.Down, Time: ms(2500)}
	chart := game.NewChart([]*game.Note{near, far})

	// At 4.1s near is 10 past the line and far is 40 short of it
	result := scorer.ApplyInputToChart(chart, game.Input{Lane: game.Down, Time: ms(4100)})
	if result.Note != near {
		t.Fatalf("expected the nearest note to be hit, got %+v", result.Note)
	}
	if !far.Pending() {
		t.Fatal("a single press resolved two notes")
	}

	// A second press takes the remaining note
	result = scorer.ApplyInputToChart(chart, game.Input{Lane: game.Down, Time: ms(4100)})
	if result.Note != far || result.Judgement.Tier != game.Good {
		t.Fatalf("expected a good hit on the far note, got %+v", result)
	}
}

func TestApplyInputTieTakesEarliest(t *testing.T) {
	scorer := newTestScorer()
	early := &game.Note{Lane: game.Up, Time: ms(2000)}
	late := &game.Note{Lane: game.Up, Time: ms(2500)}
	chart := game.NewChart([]*game.Note{early, late})

	// 4.25s is 25 past the line for early and 25 before it for late
	result := scorer.ApplyInputToChart(chart, game.Input{Lane: game.Up, Time: ms(4250)})
	if result.Note != early {
		t.Fatalf("expected the earlier note on a tie, got %+v", result.Note)
	}
}

func TestApplyInputSkipsResolved(t *testing.T) {
	scorer := newTestScorer()
	missed := &game.Note{Lane: game.Left, Time: ms(2000)}
	missed.Miss(ms(4600))
	chart := game.NewChart([]*game.Note{missed})

	result := scorer.ApplyInputToChart(chart, game.Input{Lane: game.Left, Time: ms(4000)})
	if !result.None() || missed.Status != game.Missed {
		t.Fatalf("a missed note was judged: %+v", missed)
	}
}

func TestExpired(t *testing.T) {
	scorer := newTestScorer()
	note := &game.Note{Lane: game.Left, Time: 2 * time.Second}
	expired := map[time.Duration]bool{
		ms(0):    false,
		ms(4000): false,
		ms(4500): false, // exactly on the edge of the good window
		ms(4510): true,
		ms(9000): true,
	}
	for at, expected := range expired {
		if scorer.Expired(note, at) != expected {
			t.Errorf("Expired at %v: expected %v", at, expected)
		}
	}
}
