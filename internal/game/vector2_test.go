package game

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := NewVec2(3, 4)
	b := NewVec2(-1, 2)

	if got := a.Plus(b); got.X != 2 || got.Y != 6 {
		t.Errorf("Plus: got %+v", got)
	}
	if got := a.Minus(b); got.X != 4 || got.Y != 2 {
		t.Errorf("Minus: got %+v", got)
	}
	if got := a.Times(2); got.X != 6 || got.Y != 8 {
		t.Errorf("Times: got %+v", got)
	}
	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot: got %f", got)
	}
	if got := a.Magnitude(); got != 5 {
		t.Errorf("Magnitude: got %f", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := NewVec2(10, 0).Normalize()
	if v.X != 1 || v.Y != 0 {
		t.Errorf("Normalize: got %+v", v)
	}
	if !NewVec2(0, 0).Normalize().IsZero() {
		t.Error("Normalize of zero vector should be zero")
	}
	m := NewVec2(3, -7).Normalize().Magnitude()
	if math.Abs(m-1) > 1e-12 {
		t.Errorf("Normalize magnitude: got %f", m)
	}
}

func TestVec2IsFinite(t *testing.T) {
	if !NewVec2(1, 2).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if NewVec2(math.NaN(), 0).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if NewVec2(0, math.Inf(1)).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}
