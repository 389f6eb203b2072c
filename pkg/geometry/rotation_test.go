package geometry

import (
	"math"
	"testing"
)

func TestRotationBetween(t *testing.T) {
	from := NewVector3(1, 1, 1)
	rot := RotationBetween(from, Up)

	result := rot.Apply(from.Normalize())
	if !result.ApproxEqual(Up, 1e-9) {
		t.Errorf("RotationBetween failed: expected %v, got %v", Up, result)
	}
}

func TestRotationBetweenAntiparallel(t *testing.T) {
	rot := RotationBetween(NewVector3(0, -1, 0), Up)

	result := rot.Apply(NewVector3(0, -2, 0))
	expected := NewVector3(0, 2, 0)
	if !result.ApproxEqual(expected, 1e-9) {
		t.Errorf("Antiparallel rotation failed: expected %v, got %v", expected, result)
	}
}

func TestRotationPreservesLength(t *testing.T) {
	rot := EulerXYZ(0.3, -1.1, 2.0)
	v := NewVector3(3, 4, 12)

	if math.Abs(rot.Apply(v).Length()-13) > 1e-9 {
		t.Errorf("Length not preserved: expected 13, got %v", rot.Apply(v).Length())
	}
}

func TestRotationThen(t *testing.T) {
	quarter := AxisAngle(Up, math.Pi/2)
	half := quarter.Then(quarter)

	result := half.Apply(NewVector3(1, 0, 0))
	expected := NewVector3(-1, 0, 0)
	if !result.ApproxEqual(expected, 1e-9) {
		t.Errorf("Then failed: expected %v, got %v", expected, result)
	}
}

func TestZeroRotationIsIdentity(t *testing.T) {
	var rot Rotation
	v := NewVector3(1, 2, 3)

	if rot.Apply(v) != v {
		t.Errorf("Zero rotation failed: expected %v, got %v", v, rot.Apply(v))
	}
}

func TestTransformRotateOnWorldAxis(t *testing.T) {
	body := Transform{Rotation: AxisAngle(NewVector3(1, 0, 0), math.Pi/2)}
	body.RotateOnWorldAxis(Up, math.Pi/2)

	// local +Y goes to world +Z under the tilt, then the world yaw carries it to +X
	result := body.Apply(NewVector3(0, 1, 0))
	expected := NewVector3(1, 0, 0)
	if !result.ApproxEqual(expected, 1e-9) {
		t.Errorf("RotateOnWorldAxis failed: expected %v, got %v", expected, result)
	}
}
