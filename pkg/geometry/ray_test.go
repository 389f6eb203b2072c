package geometry

import (
	"math"
	"testing"
)

func TestRayIntersectTriangle(t *testing.T) {
	ray := NewRay(NewVector3(0.25, 0.25, 5), NewVector3(0, 0, -1))

	dist, ok := ray.IntersectTriangle(
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)
	if !ok {
		t.Fatal("IntersectTriangle failed: expected a hit")
	}
	if math.Abs(dist-5) > 1e-10 {
		t.Errorf("IntersectTriangle failed: expected distance 5, got %v", dist)
	}
}

func TestRayIntersectTriangleBackSide(t *testing.T) {
	ray := NewRay(NewVector3(0.25, 0.25, -5), NewVector3(0, 0, 1))

	if _, ok := ray.IntersectTriangle(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0)); !ok {
		t.Error("IntersectTriangle failed: back faces should be hit")
	}
}

func TestRayMissesTriangle(t *testing.T) {
	ray := NewRay(NewVector3(2, 2, 5), NewVector3(0, 0, -1))

	if _, ok := ray.IntersectTriangle(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0)); ok {
		t.Error("IntersectTriangle failed: expected a miss")
	}
}

func TestRayIgnoresTriangleBehindOrigin(t *testing.T) {
	ray := NewRay(NewVector3(0.25, 0.25, 5), NewVector3(0, 0, 1))

	if _, ok := ray.IntersectTriangle(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0)); ok {
		t.Error("IntersectTriangle failed: triangle behind the origin should not be hit")
	}
}
