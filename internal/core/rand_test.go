package core

import "testing"

func TestRandDeterministic(t *testing.T) {
	a := NewRand(12345)
	b := NewRand(12345)

	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("identical seeds diverged at draw %d", i)
		}
	}
}

func TestRandSeedsDiffer(t *testing.T) {
	a := NewRand(1)
	b := NewRand(2)
	if a.Next() == b.Next() {
		t.Error("different seeds should not produce the same first draw")
	}
}

func TestRandZeroSeed(t *testing.T) {
	r := NewRand(0)
	if r.Next() == 0 {
		t.Error("zero seed should be remapped away from the stuck state")
	}
}

func TestIntnBounds(t *testing.T) {
	r := NewRand(99)
	for i := 0; i < 1000; i++ {
		if v := r.Intn(10); v < 0 || v >= 10 {
			t.Fatalf("Intn(10) = %d out of range", v)
		}
	}
	if NewRand(99).Intn(0) != 0 {
		t.Error("Intn(0) should be 0")
	}
}

func TestFloat64Bounds(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 1000; i++ {
		if v := r.Float64(); v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v out of range", v)
		}
	}
}
