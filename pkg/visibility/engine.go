// Package visibility decides per frame which labels are shown and how strongly.
//
// Faces are evaluated first. Every face label that ends up clearly visible records its
// screen position, and vertex labels are then dimmed by their pixel distance to those
// positions. The pass keeps no state between frames.
package visibility

import (
	"math"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/labels"
	"github.com/philipparndt/gotetra/pkg/schema"
	"github.com/philipparndt/gotetra/pkg/solid"
)

// Projector is the part of a camera the engine needs
type Projector interface {
	Position() geometry.Vector3
	// ToScreen maps a world point to pixel coordinates, origin top left. ok is false
	// when the point cannot be projected, e.g. it lies behind the camera.
	ToScreen(p geometry.Vector3) (x, y float64, ok bool)
}

// Frame is everything that changes between two passes
type Frame struct {
	Camera Projector
	Body   geometry.Transform
	// Selected pins a single face by name; empty means no selection
	Selected string
}

// ScreenPoint is a position in pixels
type ScreenPoint struct {
	X, Y float64
}

// Distance returns the Euclidean pixel distance to o
func (p ScreenPoint) Distance(o ScreenPoint) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// LabelState is the outcome of one pass for one label
type LabelState struct {
	Label   labels.Label
	Opacity float64
	World   geometry.Vector3
	Screen  ScreenPoint
	// Dot is the face front-facing dot product, or the hemisphere dot for vertices
	Dot float64
}

// Visible reports whether the label should be drawn at all
func (s LabelState) Visible() bool {
	return s.Opacity > 0
}

// Result holds the label states of one frame in layout order
type Result struct {
	Faces             []LabelState
	Vertices          []LabelState
	VisibleFacePoints []ScreenPoint
}

// Engine evaluates label visibility for a fixed solid and layout
type Engine struct {
	solid  *solid.Solid
	layout *labels.Layout
	policy schema.Policy
}

// NewEngine creates an engine. The solid, layout and policy never change afterwards.
func NewEngine(s *solid.Solid, layout *labels.Layout, policy schema.Policy) *Engine {
	return &Engine{solid: s, layout: layout, policy: policy}
}

// Policy returns the label policy in effect
func (e *Engine) Policy() schema.Policy {
	return e.policy
}

// Update runs the face pass and then the vertex pass for one frame
func (e *Engine) Update(f Frame) Result {
	selected := -1
	if f.Selected != "" {
		if idx, ok := e.solid.FaceIndex(f.Selected); ok {
			selected = idx
		}
	}

	camera := f.Camera.Position()
	res := Result{
		Faces:    make([]LabelState, 0, len(e.layout.Faces)),
		Vertices: make([]LabelState, 0, len(e.layout.Vertices)),
	}

	for _, l := range e.layout.Faces {
		st := e.faceState(l, f, camera, selected)
		if st.Opacity > OcclusionOpacity {
			res.VisibleFacePoints = append(res.VisibleFacePoints, st.Screen)
		}
		res.Faces = append(res.Faces, st)
	}

	for _, l := range e.layout.Vertices {
		res.Vertices = append(res.Vertices, e.vertexState(l, f, camera, selected, res.VisibleFacePoints))
	}
	return res
}

func (e *Engine) faceState(l labels.Label, f Frame, camera geometry.Vector3, selected int) LabelState {
	world := f.Body.Apply(l.Local)
	x, y, onScreen := f.Camera.ToScreen(world)
	normal := f.Body.ApplyDirection(e.solid.Faces[l.FaceIndex].Normal)
	view := camera.Sub(world).Normalize()

	st := LabelState{
		Label:  l,
		World:  world,
		Screen: ScreenPoint{X: x, Y: y},
		Dot:    normal.Dot(view),
	}
	switch {
	case !onScreen:
		st.Opacity = 0
	case selected < 0:
		st.Opacity = FaceOpacity(st.Dot, e.policy)
	case selected == l.FaceIndex:
		st.Opacity = 1
	default:
		st.Opacity = 0
	}
	return st
}

func (e *Engine) vertexState(l labels.Label, f Frame, camera geometry.Vector3, selected int, faces []ScreenPoint) LabelState {
	world := f.Body.Apply(l.Local)
	st := LabelState{
		Label: l,
		World: world,
		Dot:   HemisphereDot(f.Body.Position, world, camera),
	}

	if selected >= 0 && !e.solid.FaceHasVertex(selected, l.VertexName) {
		return st
	}
	if e.policy.HideBackVertices && st.Dot <= e.policy.HemisphereBias {
		return st
	}

	x, y, onScreen := f.Camera.ToScreen(world)
	if !onScreen {
		return st
	}
	st.Screen = ScreenPoint{X: x, Y: y}

	minDistance := math.Inf(1)
	for _, p := range faces {
		minDistance = math.Min(minDistance, st.Screen.Distance(p))
	}
	st.Opacity = VertexOpacity(minDistance, e.policy.FadeNearPx)
	return st
}
