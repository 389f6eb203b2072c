package geometry

import "github.com/go-gl/mathgl/mgl64"

// Rotation is a rigid-body orientation stored as a unit quaternion
type Rotation struct {
	q mgl64.Quat
}

// IdentityRotation returns the rotation that leaves every vector unchanged
func IdentityRotation() Rotation {
	return Rotation{q: mgl64.QuatIdent()}
}

// AxisAngle returns a rotation of angle radians about axis
func AxisAngle(axis Vector3, angle float64) Rotation {
	return Rotation{q: mgl64.QuatRotate(angle, axis.Normalize().Vec3())}
}

// RotationBetween returns the minimal rotation mapping the direction of from onto the direction of to.
// Antiparallel inputs rotate half a turn about an axis orthogonal to from.
func RotationBetween(from, to Vector3) Rotation {
	return Rotation{q: mgl64.QuatBetweenVectors(from.Normalize().Vec3(), to.Normalize().Vec3()).Normalize()}
}

// EulerXYZ builds a rotation from intrinsic X, then Y, then Z angles in radians
func EulerXYZ(x, y, z float64) Rotation {
	qx := mgl64.QuatRotate(x, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(y, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(z, mgl64.Vec3{0, 0, 1})
	return Rotation{q: qx.Mul(qy).Mul(qz).Normalize()}
}

// Apply rotates v
func (r Rotation) Apply(v Vector3) Vector3 {
	return FromVec3(r.quat().Rotate(v.Vec3()))
}

// Then returns the rotation that applies r first and next afterwards
func (r Rotation) Then(next Rotation) Rotation {
	return Rotation{q: next.quat().Mul(r.quat()).Normalize()}
}

// Quat exposes the underlying quaternion
func (r Rotation) Quat() mgl64.Quat {
	return r.quat()
}

// ApproxEqual reports whether both rotations describe the same orientation within eps
func (r Rotation) ApproxEqual(other Rotation, eps float64) bool {
	a, b := r.quat(), other.quat()
	return a.ApproxEqualThreshold(b, eps) || a.ApproxEqualThreshold(b.Scale(-1), eps)
}

// zero value behaves as identity
func (r Rotation) quat() mgl64.Quat {
	if r.q.W == 0 && r.q.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return r.q
}

// Transform places a rigid body in the world: rotation about its origin, then translation
type Transform struct {
	Rotation Rotation
	Position Vector3
}

// Apply maps a local point into world space
func (t Transform) Apply(p Vector3) Vector3 {
	return t.Rotation.Apply(p).Add(t.Position)
}

// ApplyDirection maps a local direction into world space and renormalizes it
func (t Transform) ApplyDirection(d Vector3) Vector3 {
	return t.Rotation.Apply(d).Normalize()
}

// RotateOnWorldAxis spins the body by angle radians about a world-space axis through its origin
func (t *Transform) RotateOnWorldAxis(axis Vector3, angle float64) {
	t.Rotation = t.Rotation.Then(AxisAngle(axis, angle))
}
