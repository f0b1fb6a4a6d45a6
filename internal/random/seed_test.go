package random

import "testing"

func TestNewShufflerReplaysSeed(t *testing.T) {
	a, seed, err := NewShuffler(42)
	if err != nil {
		t.Fatal(err)
	}
	if seed != 42 {
		t.Fatalf("a given seed is kept, got %d", seed)
	}
	b, _, err := NewShuffler(42)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 16; i++ {
		if a.Int63() != b.Int63() {
			t.Fatal("the same seed should replay the same sequence")
		}
	}
}

func TestNewShufflerDrawsSeedWhenZero(t *testing.T) {
	_, seed, err := NewShuffler(0)
	if err != nil {
		t.Fatal(err)
	}
	if seed == 0 {
		t.Fatal("a fresh seed should be drawn")
	}
}
