package math

import (
	"math"
	"testing"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	got := a.Add(b)
	want := Vec3{5, 7, 9}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
	if a != (Vec3{1, 2, 3}) {
		t.Errorf("Vec3.Add() modified receiver: %v", a)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	if l := n.Length(); math.Abs(l-1) > 1e-12 {
		t.Errorf("Vec3.Normalize().Length() = %v, want 1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", z)
	}
}

func TestVec3IsFinite(t *testing.T) {
	tests := []struct {
		v    Vec3
		want bool
	}{
		{Vec3{1, 2, 3}, true},
		{Vec3{math.NaN(), 0, 0}, false},
		{Vec3{0, math.Inf(1), 0}, false},
		{Vec3{0, 0, math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFinite(); got != tt.want {
			t.Errorf("%v.IsFinite() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestBoundsOf(t *testing.T) {
	b := BoundsOf(Vec3{1, -2, 3}, Vec3{-1, 2, 0}, Vec3{0, 0, 5})
	if b.Min != (Vec3{-1, -2, 0}) || b.Max != (Vec3{1, 2, 5}) {
		t.Errorf("BoundsOf() = %+v", b)
	}
	if b.Center() != (Vec3{0, 0, 2.5}) {
		t.Errorf("Center() = %v", b.Center())
	}
	if !b.Contains(Vec3{0, 0, 1}) || b.Contains(Vec3{2, 0, 1}) {
		t.Error("Contains() gave wrong answer")
	}
}

func TestEmptyBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Error("EmptyBounds() should be empty")
	}
	b = b.Extend(Vec3{1, 1, 1})
	if b.IsEmpty() {
		t.Error("bounds with one point should not be empty")
	}
}

func TestEulerDegrees(t *testing.T) {
	e := EulerFromDegrees(Vec3{90, 180, -45})
	if math.Abs(e.X-math.Pi/2) > 1e-12 || math.Abs(e.Y-math.Pi) > 1e-12 || math.Abs(e.Z+math.Pi/4) > 1e-12 {
		t.Errorf("EulerFromDegrees() = %+v", e)
	}
	if !e.Degrees().ApproxEqual(Vec3{90, 180, -45}, 1e-9) {
		t.Errorf("Degrees() = %v", e.Degrees())
	}
}
