package game

import (
	"math/rand"
	"testing"
	"time"
)

type constRand int

func (c constRand) Intn(n int) int {
	return int(c) % n
}

func beatsOf(n int) []time.Duration {
	beats := make([]time.Duration, n)
	for i := range beats {
		beats[i] = time.Duration(i) * 250 * time.Millisecond
	}
	return beats
}

func TestGenerateEmpty(t *testing.T) {
	chart := NewGenerator(constRand(0)).Generate(nil)
	if len(chart.Notes) != 0 || chart.NoteCount != 0 {
		t.Fatalf("expected an empty chart, got %v notes", len(chart.Notes))
	}
	if chart.Last() != 0 {
		t.Fatalf("expected last spawn 0, got %v", chart.Last())
	}
}

func TestGenerateBalance(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		g := NewGenerator(rand.New(rand.NewSource(seed)))
		chart := g.Generate(beatsOf(300))

		var counts [NLanes]int
		for i, n := range chart.Notes {
			counts[n.Lane]++
			min, max := counts[0], counts[0]
			for _, c := range counts {
				if c < min {
					min = c
				}
				if c > max {
					max = c
				}
			}
			if max-min > BalanceThreshold {
				t.Fatalf("seed %v: lane skew %v after note %v (%v)", seed, max-min, i, counts)
			}
		}
	}
}

func TestGenerateForcesLeastUsed(t *testing.T) {
	chart := NewGenerator(constRand(0)).Generate(beatsOf(7))
	expected := []Direction{Left, Left, Left, Up, Down, Right, Left}
	for i, n := range chart.Notes {
		if n.Lane != expected[i] {
			t.Log("note    ", i, n.Lane)
			t.Log("expected", expected[i])
			t.Fail()
		}
	}
}

func TestGenerateReproducible(t *testing.T) {
	a := NewGenerator(rand.New(rand.NewSource(42))).Generate(beatsOf(64))
	b := NewGenerator(rand.New(rand.NewSource(42))).Generate(beatsOf(64))
	for i := range a.Notes {
		if a.Notes[i].Lane != b.Notes[i].Lane || a.Notes[i].Time != b.Notes[i].Time {
			t.Fatalf("charts differ at note %v: %+v != %+v", i, a.Notes[i], b.Notes[i])
		}
	}
}

func TestGenerateOrderAndState(t *testing.T) {
	beats := []time.Duration{3 * time.Second, time.Second, 2 * time.Second}
	chart := NewGenerator(rand.New(rand.NewSource(1))).Generate(beats)

	if chart.NoteCount != 3 {
		t.Fatalf("expected 3 notes, got %v", chart.NoteCount)
	}
	var total int64
	for _, c := range chart.LaneCounts {
		total += c
	}
	if total != chart.NoteCount {
		t.Fatalf("lane counts %v do not add up to %v", chart.LaneCounts, chart.NoteCount)
	}
	for i, n := range chart.Notes {
		if !n.Pending() {
			t.Errorf("note %v is %v, expected pending", i, n.Status)
		}
		if i > 0 && chart.Notes[i-1].Time > n.Time {
			t.Errorf("note %v spawns before note %v", i, i-1)
		}
	}
	if chart.Last() != 3*time.Second {
		t.Errorf("expected last spawn 3s, got %v", chart.Last())
	}
	if beats[0] != 3*time.Second {
		t.Error("input beats were reordered in place")
	}
}

func BenchmarkGenerate(b *testing.B) {
	beats := beatsOf(2000)
	g := NewGenerator(rand.New(rand.NewSource(7)))
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		g.Generate(beats)
	}
}
