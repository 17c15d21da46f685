package core

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -2, 0)

	if got := a.Add(b); got != V3(5, 0, 3) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != V3(-3, 4, 3) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != V3(2, 4, 6) {
		t.Errorf("Scale = %+v", got)
	}
	if got := a.Neg(); got != V3(-1, -2, -3) {
		t.Errorf("Neg = %+v", got)
	}
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot = %v, want 0", got)
	}
}

func TestVec3Length(t *testing.T) {
	v := V3(3, 4, 0)
	if v.LenSq() != 25 || v.Len() != 5 {
		t.Errorf("LenSq = %v, Len = %v", v.LenSq(), v.Len())
	}

	n := v.Normalized()
	if math.Abs(n.Len()-1.0) > 1e-12 {
		t.Errorf("Normalized length = %v, want 1", n.Len())
	}
	if n.X <= 0 || n.Y <= 0 || n.Z != 0 {
		t.Errorf("Normalized direction off: %+v", n)
	}
	if got := (Vec3{}).Normalized(); !got.IsZero() {
		t.Errorf("zero vector Normalized = %+v, want zero", got)
	}
}

func TestClamps(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp = %d", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("Clamp = %d", got)
	}
	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF = %v", got)
	}
	if got := Clamp01(-0.5); got != 0 {
		t.Errorf("Clamp01 = %v", got)
	}
	if got := Clamp01(0.25); got != 0.25 {
		t.Errorf("Clamp01 should pass in-range values through, got %v", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(2, 3) != 2 || Max(2, 3) != 3 {
		t.Error("integer Min/Max off")
	}
	if MaxF(0.1, 0.3) != 0.3 {
		t.Error("MaxF off")
	}
	if Abs(-4) != 4 || Abs(4) != 4 {
		t.Error("Abs off")
	}
}
