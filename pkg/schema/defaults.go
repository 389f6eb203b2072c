package schema

import (
	"image/color"
	"math"

	"github.com/philipparndt/gotetra/pkg/geometry"
)

// Default values used when the document leaves a setting out
const (
	DefaultRadius               = 1.0
	DefaultFaceScale            = 0.34
	DefaultVertexScale          = 0.24
	DefaultFaceInset            = 0.10
	DefaultFaceNormalLift       = 0.012
	DefaultVertexFadeNearFacePx = 28.0
	DefaultFaceDotStart         = 0.10
	DefaultFaceDotFull          = 0.30
	DefaultFaceDotThreshold     = 0.15
	DefaultHemisphereBias       = 0.02
	DefaultFOV                  = 42.0
	DefaultSpinRadPerSec        = 0.25
	DefaultFaceColor            = "#cfd8e3"
)

// FaceMode selects how face labels react to the front-facing dot product
type FaceMode int

const (
	// FaceModeRamp fades labels in with a smoothstepped linear ramp
	FaceModeRamp FaceMode = iota
	// FaceModeThreshold shows labels only above a single threshold
	FaceModeThreshold
)

// String returns the schema spelling of the mode
func (m FaceMode) String() string {
	if m == FaceModeThreshold {
		return "threshold"
	}
	return "ramp"
}

// Policy is the label policy with every default resolved
type Policy struct {
	HideBackVertices bool
	FadeNearPx       float64
	DotStart         float64
	DotFull          float64
	HemisphereBias   float64
	Mode             FaceMode
	Threshold        float64
}

// LabelStyle is the label placement with every default resolved
type LabelStyle struct {
	FaceScale      float64
	VertexScale    float64
	FaceInset      float64
	FaceNormalLift float64
}

// View is the default view with every default resolved
type View struct {
	FOV            float64 // degrees
	CameraPos      geometry.Vector3
	CameraTarget   geometry.Vector3
	ObjectRotation geometry.Vector3 // XYZ euler angles in radians
}

// Radius returns the circumradius of the solid
func (s *Schema) Radius() float64 {
	r := floatOr(s.Geometry.Radius, DefaultRadius)
	if r <= 0 || math.IsNaN(r) {
		return DefaultRadius
	}
	return r
}

// SpinRate returns the idle spin speed in radians per second
func (s *Schema) SpinRate() float64 {
	return floatOr(s.Spin.RadPerSec, DefaultSpinRadPerSec)
}

// Policy resolves the label policy
func (s *Schema) Policy() Policy {
	p := s.LabelPolicy
	mode := FaceModeRamp
	if p.FaceMode == "threshold" {
		mode = FaceModeThreshold
	}
	return Policy{
		HideBackVertices: p.HideBackVertices == nil || *p.HideBackVertices,
		FadeNearPx:       floatOr(p.VertexFadeNearFacePx, DefaultVertexFadeNearFacePx),
		DotStart:         floatOr(p.FaceDotStart, DefaultFaceDotStart),
		DotFull:          floatOr(p.FaceDotFull, DefaultFaceDotFull),
		HemisphereBias:   floatOr(p.HemisphereBias, DefaultHemisphereBias),
		Mode:             mode,
		Threshold:        floatOr(p.FaceDotThreshold, DefaultFaceDotThreshold),
	}
}

// LabelStyle resolves label scale and placement fractions
func (s *Schema) LabelStyle() LabelStyle {
	l := s.Labels
	return LabelStyle{
		FaceScale:      floatOr(l.FaceScale, DefaultFaceScale),
		VertexScale:    floatOr(l.VertexScale, DefaultVertexScale),
		FaceInset:      floatOr(l.FaceInset, DefaultFaceInset),
		FaceNormalLift: floatOr(l.FaceNormalLift, DefaultFaceNormalLift),
	}
}

// View resolves the default camera pose and object rotation
func (s *Schema) View() View {
	v := s.DefaultView
	return View{
		FOV:            floatOr(v.Camera.FOV, DefaultFOV),
		CameraPos:      vectorOr(v.Camera.Pos, geometry.NewVector3(2.2, 2.2, 2.2)),
		CameraTarget:   vectorOr(v.Camera.Target, geometry.Vector3{}),
		ObjectRotation: vectorOr(v.ObjectRotationEuler, geometry.Vector3{}),
	}
}

// FaceColor returns the face color, falling back to DefaultFaceColor when missing or malformed
func (s *Schema) FaceColor(name string) color.RGBA {
	fallback, _ := ParseColor(DefaultFaceColor)
	return ColorOr(s.Labels.Faces[name].Color, fallback)
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func vectorOr(v []float64, fallback geometry.Vector3) geometry.Vector3 {
	if len(v) != 3 {
		return fallback
	}
	return geometry.NewVector3(v[0], v[1], v[2])
}

// Float returns a pointer to v, for building schemas in code
func Float(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v, for building schemas in code
func Bool(v bool) *bool {
	return &v
}

// Default returns the built-in Belief schema
func Default() *Schema {
	return &Schema{
		Title:    "Belief",
		Geometry: Geometry{Radius: Float(1.0)},
		Labels: Labels{
			Faces: map[string]FaceLabel{
				"Identity": {Text: "IDENTITY", Color: "#ffffff"},
				"Trust":    {Text: "TRUST", Color: "#ffff00"},
				"Truth":    {Text: "TRUTH", Color: "#ff00ff"},
				"Data":     {Text: "DATA", Color: "#00ffff"},
			},
			Vertices: map[string]VertexLabel{
				"Identity": {Key: "I"},
				"Trust":    {Key: "T"},
				"Truth":    {Key: "R"},
				"Data":     {Key: "D"},
			},
		},
		Topology: Topology{
			UpVertexLabel: "Belief",
			VertexOrder:   []string{"Identity", "Data", "Trust", "Truth"},
			FaceOrder:     []string{"Identity", "Trust", "Truth", "Data"},
			FaceVertices: map[string][]string{
				"Identity": {"Trust", "Truth", "Data"},
				"Trust":    {"Identity", "Truth", "Data"},
				"Truth":    {"Identity", "Trust", "Data"},
				"Data":     {"Identity", "Trust", "Truth"},
			},
			VertexFaceTriples: map[string][]string{
				"Belief":      {"Data", "Truth", "Trust"},
				"Likelihood":  {"Data", "Truth", "Identity"},
				"Evidence":    {"Truth", "Trust", "Identity"},
				"Probability": {"Data", "Trust", "Identity"},
			},
		},
		TOC: []TOCEntry{
			{ID: "overview", Title: "Overview", Src: "overview.md"},
		},
		Notes: map[string]string{
			"overview": "# Notes\n\n",
			"Identity": "# Identity\n\n",
			"Trust":    "# Trust\n\n",
			"Truth":    "# Truth\n\n",
			"Data":     "# Data\n\n",
		},
	}
}
