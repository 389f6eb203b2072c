package visibility

import (
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/labels"
	"github.com/philipparndt/gotetra/pkg/schema"
	"github.com/philipparndt/gotetra/pkg/solid"
)

// orthographic projector, 100 px per unit around (400, 300)
type flatCamera struct {
	pos geometry.Vector3
}

func (c flatCamera) Position() geometry.Vector3 { return c.pos }

func (c flatCamera) ToScreen(p geometry.Vector3) (float64, float64, bool) {
	return 400 + p.X*100, 300 - p.Y*100, true
}

var defaultCamera = flatCamera{pos: geometry.NewVector3(2.2, 2.2, 2.2)}

func newEngine(t *testing.T, sc *schema.Schema) (*solid.Solid, *Engine) {
	t.Helper()
	s, _, err := solid.Build(sc, solid.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)
	return s, NewEngine(s, labels.Build(s, sc), sc.Policy())
}

// facing returns a body pose that turns face i straight toward the camera
func facing(s *solid.Solid, i int) geometry.Transform {
	toCamera := defaultCamera.pos.Normalize()
	return geometry.Transform{Rotation: geometry.RotationBetween(s.Faces[i].Normal, toCamera)}
}

func TestSingleFrontFace(t *testing.T) {
	s, engine := newEngine(t, schema.Default())

	for i := range s.Faces {
		res := engine.Update(Frame{Camera: defaultCamera, Body: facing(s, i)})
		require.Len(t, res.Faces, 4)

		for j, st := range res.Faces {
			if j == i {
				assert.InDelta(t, 1.0, st.Dot, 1e-9)
				assert.Equal(t, 1.0, st.Opacity, "face %s", st.Label.FaceName)
			} else {
				assert.Less(t, st.Dot, 0.0)
				assert.Equal(t, 0.0, st.Opacity, "face %s", st.Label.FaceName)
			}
		}
		require.Len(t, res.VisibleFacePoints, 1)
		assert.Equal(t, res.Faces[i].Screen, res.VisibleFacePoints[0])
	}
}

func TestVertexPassAgainstFrontFace(t *testing.T) {
	s, engine := newEngine(t, schema.Default())
	policy := engine.Policy()

	res := engine.Update(Frame{Camera: defaultCamera, Body: facing(s, 0)})
	require.Len(t, res.Vertices, 4)
	front := res.VisibleFacePoints[0]

	hidden := 0
	for _, st := range res.Vertices {
		if !s.FaceHasVertex(0, st.Label.VertexName) {
			// the vertex opposite the front face points away from the camera
			assert.Less(t, st.Dot, policy.HemisphereBias)
			assert.Equal(t, 0.0, st.Opacity)
			hidden++
			continue
		}
		assert.Greater(t, st.Dot, policy.HemisphereBias)
		want := VertexOpacity(st.Screen.Distance(front), policy.FadeNearPx)
		assert.InDelta(t, want, st.Opacity, 1e-12)
		assert.GreaterOrEqual(t, st.Opacity, VertexFloor)
	}
	assert.Equal(t, 1, hidden)
}

func TestHemisphereFailureIgnoresDistance(t *testing.T) {
	s, engine := newEngine(t, schema.Default())

	for i := range s.Faces {
		res := engine.Update(Frame{Camera: defaultCamera, Body: facing(s, i)})
		for _, st := range res.Vertices {
			if st.Dot <= engine.Policy().HemisphereBias {
				assert.Equal(t, 0.0, st.Opacity)
			} else {
				assert.GreaterOrEqual(t, st.Opacity, VertexFloor)
			}
		}
	}
}

func TestShowBackVertices(t *testing.T) {
	sc := schema.Default()
	sc.LabelPolicy.HideBackVertices = schema.Bool(false)
	s, engine := newEngine(t, sc)

	res := engine.Update(Frame{Camera: defaultCamera, Body: facing(s, 0)})
	for _, st := range res.Vertices {
		assert.GreaterOrEqual(t, st.Opacity, VertexFloor, "vertex %s", st.Label.VertexName)
	}
}

func TestNoVisibleFaceLeavesVerticesOpaque(t *testing.T) {
	sc := schema.Default()
	sc.LabelPolicy.FaceDotStart = schema.Float(2)
	sc.LabelPolicy.FaceDotFull = schema.Float(3)
	s, engine := newEngine(t, sc)

	res := engine.Update(Frame{Camera: defaultCamera, Body: facing(s, 2)})
	assert.Empty(t, res.VisibleFacePoints)
	for _, st := range res.Vertices {
		if st.Visible() {
			assert.InDelta(t, 1.0, st.Opacity, 1e-12)
		}
	}
}

func TestSelectionMode(t *testing.T) {
	s, engine := newEngine(t, schema.Default())
	selected := s.Faces[1].Name

	// turn the selected face away so only the selection keeps it visible
	res := engine.Update(Frame{Camera: defaultCamera, Body: facing(s, 0), Selected: selected})

	for _, st := range res.Faces {
		if st.Label.FaceName == selected {
			assert.Equal(t, 1.0, st.Opacity)
		} else {
			assert.Equal(t, 0.0, st.Opacity)
		}
	}
	require.Len(t, res.VisibleFacePoints, 1)

	for _, st := range res.Vertices {
		if !s.FaceHasVertex(1, st.Label.VertexName) {
			assert.Equal(t, 0.0, st.Opacity, "vertex %s is not on %s", st.Label.VertexName, selected)
		}
		if st.Dot <= engine.Policy().HemisphereBias {
			assert.Equal(t, 0.0, st.Opacity)
		}
	}
}

func TestUnknownSelectionIsIgnored(t *testing.T) {
	s, engine := newEngine(t, schema.Default())
	body := facing(s, 3)

	plain := engine.Update(Frame{Camera: defaultCamera, Body: body})
	odd := engine.Update(Frame{Camera: defaultCamera, Body: body, Selected: "Nope"})
	assert.Equal(t, plain, odd)
}

func TestTranslatedBody(t *testing.T) {
	s, engine := newEngine(t, schema.Default())
	body := facing(s, 0)
	body.Position = geometry.NewVector3(0.5, -0.25, 0.1)
	camera := flatCamera{pos: defaultCamera.pos.Add(body.Position)}

	res := engine.Update(Frame{Camera: camera, Body: body})
	assert.InDelta(t, 1.0, res.Faces[0].Dot, 1e-9)
	assert.Len(t, res.VisibleFacePoints, 1)
	for _, st := range res.Vertices {
		assert.False(t, math.IsNaN(st.Opacity))
	}
}

// projector with every point behind the eye
type blindCamera struct {
	flatCamera
}

func (blindCamera) ToScreen(geometry.Vector3) (float64, float64, bool) {
	return 0, 0, false
}

func TestUnprojectablePointsAreHidden(t *testing.T) {
	s, engine := newEngine(t, schema.Default())

	res := engine.Update(Frame{Camera: blindCamera{defaultCamera}, Body: facing(s, 0)})
	require.Len(t, res.Faces, 4)
	for _, st := range res.Faces {
		assert.Equal(t, 0.0, st.Opacity, "face %s", st.Label.FaceName)
	}
	for _, st := range res.Vertices {
		assert.Equal(t, 0.0, st.Opacity, "vertex %s", st.Label.VertexName)
	}
	assert.Empty(t, res.VisibleFacePoints)
}
