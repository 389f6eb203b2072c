package visibility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/schema"
)

func TestSmoothstep(t *testing.T) {
	assert.Equal(t, 0.0, Smoothstep(0))
	assert.Equal(t, 1.0, Smoothstep(1))
	assert.InDelta(t, 0.5, Smoothstep(0.5), 1e-15)

	prev := Smoothstep(0)
	for i := 1; i <= 1000; i++ {
		v := Smoothstep(float64(i) / 1000)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-3))
	assert.Equal(t, 1.0, Clamp01(7))
	assert.Equal(t, 0.4, Clamp01(0.4))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
}

func TestFaceOpacityRamp(t *testing.T) {
	p := schema.Default().Policy()

	for i := -100; i <= 100; i++ {
		d := float64(i) / 100
		o := FaceOpacity(d, p)
		switch {
		case d <= p.DotStart:
			assert.Equal(t, 0.0, o, "d=%v", d)
		case d >= p.DotFull:
			assert.Equal(t, 1.0, o, "d=%v", d)
		default:
			assert.True(t, o > 0 && o <= 1, "d=%v opacity=%v", d, o)
		}
	}
	assert.InDelta(t, 0.5, FaceOpacity(0.2, p), 1e-12)
}

func TestFaceOpacityCollapsedRamp(t *testing.T) {
	p := schema.Policy{DotStart: 0.2, DotFull: 0.2}

	assert.Equal(t, 0.0, FaceOpacity(0.2, p))
	assert.Equal(t, 1.0, FaceOpacity(0.2001, p))
	assert.False(t, math.IsNaN(FaceOpacity(0.2, p)))
}

func TestFaceOpacityThreshold(t *testing.T) {
	p := schema.Policy{Mode: schema.FaceModeThreshold, Threshold: schema.DefaultFaceDotThreshold}

	assert.Equal(t, 0.0, FaceOpacity(0.15, p))
	assert.Equal(t, 1.0, FaceOpacity(0.16, p))
	assert.Equal(t, 0.0, FaceOpacity(-0.5, p))
}

func TestVertexOpacity(t *testing.T) {
	const near = schema.DefaultVertexFadeNearFacePx

	assert.InDelta(t, 1.0, VertexOpacity(math.Inf(1), near), 1e-12)
	assert.Equal(t, VertexFloor, VertexOpacity(0, near))
	assert.Equal(t, VertexFloor, VertexOpacity(near, near))
	assert.InDelta(t, 1.0, VertexOpacity(near*2.2, near), 1e-12)
	assert.InDelta(t, VertexFloor+0.88*0.5, VertexOpacity(near*1.6, near), 1e-12)

	for d := 0.0; d < 200; d += 0.5 {
		assert.GreaterOrEqual(t, VertexOpacity(d, near), VertexFloor)
	}
}

func TestHemisphereDot(t *testing.T) {
	center := geometry.NewVector3(1, 0, 0)
	camera := geometry.NewVector3(1, 0, 5)

	assert.InDelta(t, 1.0, HemisphereDot(center, geometry.NewVector3(1, 0, 2), camera), 1e-12)
	assert.InDelta(t, -1.0, HemisphereDot(center, geometry.NewVector3(1, 0, -2), camera), 1e-12)
	assert.InDelta(t, 0.0, HemisphereDot(center, geometry.NewVector3(2, 0, 0), camera), 1e-12)
}
