package rng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	if same {
		t.Fatalf("expected different seeds to produce different sequences")
	}
}

func TestChanceConsumesOneDraw(t *testing.T) {
	a := New(7)
	b := New(7)
	// Chance with p=0 and p=1 must still consume exactly one draw each so
	// downstream draws stay aligned.
	a.Chance(0)
	a.Chance(1)
	b.Float64()
	b.Float64()
	if a.Float64() != b.Float64() {
		t.Fatalf("Chance consumed an unexpected number of draws")
	}
}

func TestJitterBounds(t *testing.T) {
	s := New(99)
	for i := 0; i < 1000; i++ {
		m := s.Jitter(0.15)
		if m < 0.85 || m >= 1.15 {
			t.Fatalf("jitter out of bounds: %f", m)
		}
	}
}
