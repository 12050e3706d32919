package geom

import (
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 5, 6)

	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("unexpected sum: %v", sum)
	}

	diff := b.Sub(a)
	if diff != (Vec3{3, 3, 3}) {
		t.Errorf("unexpected diff: %v", diff)
	}

	if got := a.Dot(b); got != 32 {
		t.Errorf("expected dot 32, got %v", got)
	}

	scaled := a.Scale(2)
	if scaled != (Vec3{2, 4, 6}) {
		t.Errorf("unexpected scale: %v", scaled)
	}
}

func TestNorm(t *testing.T) {
	v := New(3, 4, 0)
	if math.Abs(v.Norm()-5) > 1e-12 {
		t.Errorf("expected norm 5, got %v", v.Norm())
	}
	if math.Abs(v.NormSquared()-25) > 1e-12 {
		t.Errorf("expected norm squared 25, got %v", v.NormSquared())
	}
}

func TestNormalize(t *testing.T) {
	v := New(0, 0, 7)
	unit := v.Normalize()
	if math.Abs(unit.Norm()-1) > 1e-12 {
		t.Errorf("expected unit length, got %v", unit.Norm())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("normalizing zero vector should give zero, got %v", zero)
	}
}

func TestDist(t *testing.T) {
	a := New(0, 0, 0)
	b := New(3.8, 0, 0)
	if math.Abs(Dist(a, b)-3.8) > 1e-12 {
		t.Errorf("expected distance 3.8, got %v", Dist(a, b))
	}
}

func TestCentroid(t *testing.T) {
	points := []Vec3{{0, 0, 0}, {2, 0, 0}, {1, 3, 0}}
	c := Centroid(points)
	if math.Abs(c[0]-1) > 1e-12 || math.Abs(c[1]-1) > 1e-12 || c[2] != 0 {
		t.Errorf("unexpected centroid: %v", c)
	}

	if Centroid(nil) != (Vec3{}) {
		t.Error("empty centroid should be zero")
	}
}

func TestIsValid(t *testing.T) {
	if !New(1, 2, 3).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if (Vec3{math.NaN(), 0, 0}).IsValid() {
		t.Error("NaN vector reported valid")
	}
	if (Vec3{0, math.Inf(1), 0}).IsValid() {
		t.Error("Inf vector reported valid")
	}
}
