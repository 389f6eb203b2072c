package geometry

import "math"

// rayEpsilon rejects hits that are parallel to the triangle or behind the origin
const rayEpsilon = 1e-9

// Ray is a half-line starting at Origin along a unit Direction
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectTriangle tests the ray against triangle abc from either side.
// It returns the distance along the ray to the hit point.
//
// Möller–Trumbore:
//
//	e1 = b-a, e2 = c-a, p = d×e2, det = e1·p
//	u = (o-a)·p / det, v = d·((o-a)×e1) / det, t = e2·((o-a)×e1) / det
func (r Ray) IntersectTriangle(a, b, c Vector3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1.0 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// IntersectTriangleShape is IntersectTriangle for a Triangle value
func (r Ray) IntersectTriangleShape(t Triangle) (float64, bool) {
	return r.IntersectTriangle(t.V1, t.V2, t.V3)
}
