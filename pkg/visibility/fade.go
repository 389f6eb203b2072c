package visibility

import (
	"math"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/schema"
)

const (
	// Epsilon guards divisions by a ramp width that may collapse to zero
	Epsilon = 1e-6

	// OcclusionOpacity is the face opacity above which a face label pushes vertex labels away
	OcclusionOpacity = 0.25

	// VertexFloor is the opacity of a hemisphere-visible vertex label crowded by a face label
	VertexFloor = 0.12

	vertexFadeSpan = 1.2
)

// Clamp01 clamps v to [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Smoothstep eases t in [0, 1] with t²(3-2t)
func Smoothstep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// FaceOpacity maps the front-facing dot product d to an opacity under the policy
func FaceOpacity(d float64, p schema.Policy) float64 {
	if p.Mode == schema.FaceModeThreshold {
		if d > p.Threshold {
			return 1
		}
		return 0
	}
	t := Clamp01((d - p.DotStart) / math.Max(Epsilon, p.DotFull-p.DotStart))
	return Smoothstep(t)
}

// VertexOpacity dims a hemisphere-visible vertex label by its pixel distance to the
// nearest visible face label. +Inf means no face label is visible.
func VertexOpacity(minDistance, fadeNearPx float64) float64 {
	t := Clamp01((minDistance - fadeNearPx) / math.Max(Epsilon, fadeNearPx*vertexFadeSpan))
	return VertexFloor + (1-VertexFloor)*t
}

// HemisphereDot is the cosine between center→point and center→camera
func HemisphereDot(center, point, camera geometry.Vector3) float64 {
	return point.Sub(center).Normalize().Dot(camera.Sub(center).Normalize())
}
