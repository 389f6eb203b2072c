// Package schema describes the declarative document that drives the labeled tetrahedron:
// face and vertex names, display text and colors, topology, label policy and default view.
package schema

import (
	"sort"
	"strings"
	"unicode"
)

// Schema is the immutable input to the solid builder and label layout.
// Optional numeric settings are pointers so an absent value can fall back to its default.
type Schema struct {
	Title       string            `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Geometry    Geometry          `json:"geometry" yaml:"geometry" toml:"geometry"`
	Labels      Labels            `json:"labels" yaml:"labels" toml:"labels"`
	LabelPolicy LabelPolicy       `json:"labelPolicy" yaml:"labelPolicy" toml:"labelPolicy"`
	DefaultView DefaultView       `json:"defaultView" yaml:"defaultView" toml:"defaultView"`
	Spin        Spin              `json:"spin" yaml:"spin" toml:"spin"`
	Topology    Topology          `json:"topology" yaml:"topology" toml:"topology"`
	TOC         []TOCEntry        `json:"toc,omitempty" yaml:"toc,omitempty" toml:"toc,omitempty"`
	Notes       map[string]string `json:"notes,omitempty" yaml:"notes,omitempty" toml:"notes,omitempty"`
}

// Geometry holds the size of the solid
type Geometry struct {
	Radius *float64 `json:"radius,omitempty" yaml:"radius,omitempty" toml:"radius,omitempty"`
}

// FaceLabel is the display text and color of one face
type FaceLabel struct {
	Text  string `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// VertexLabel is the short key shown next to a vertex
type VertexLabel struct {
	Key string `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
}

// Labels configures label text and sprite placement
type Labels struct {
	Faces          map[string]FaceLabel   `json:"faces,omitempty" yaml:"faces,omitempty" toml:"faces,omitempty"`
	Vertices       map[string]VertexLabel `json:"vertices,omitempty" yaml:"vertices,omitempty" toml:"vertices,omitempty"`
	FaceScale      *float64               `json:"faceScale,omitempty" yaml:"faceScale,omitempty" toml:"faceScale,omitempty"`
	VertexScale    *float64               `json:"vertexScale,omitempty" yaml:"vertexScale,omitempty" toml:"vertexScale,omitempty"`
	FaceInset      *float64               `json:"faceInset,omitempty" yaml:"faceInset,omitempty" toml:"faceInset,omitempty"`
	FaceNormalLift *float64               `json:"faceNormalLift,omitempty" yaml:"faceNormalLift,omitempty" toml:"faceNormalLift,omitempty"`
}

// LabelPolicy tunes the per-frame visibility and fade
type LabelPolicy struct {
	HideBackVertices     *bool    `json:"hideBackVertices,omitempty" yaml:"hideBackVertices,omitempty" toml:"hideBackVertices,omitempty"`
	VertexFadeNearFacePx *float64 `json:"vertexFadeNearFacePx,omitempty" yaml:"vertexFadeNearFacePx,omitempty" toml:"vertexFadeNearFacePx,omitempty"`
	FaceDotStart         *float64 `json:"faceDotStart,omitempty" yaml:"faceDotStart,omitempty" toml:"faceDotStart,omitempty"`
	FaceDotFull          *float64 `json:"faceDotFull,omitempty" yaml:"faceDotFull,omitempty" toml:"faceDotFull,omitempty"`
	HemisphereBias       *float64 `json:"hemisphereBias,omitempty" yaml:"hemisphereBias,omitempty" toml:"hemisphereBias,omitempty"`
	// FaceMode is "ramp" (default) or "threshold"
	FaceMode         string   `json:"faceMode,omitempty" yaml:"faceMode,omitempty" toml:"faceMode,omitempty"`
	FaceDotThreshold *float64 `json:"faceDotThreshold,omitempty" yaml:"faceDotThreshold,omitempty" toml:"faceDotThreshold,omitempty"`
}

// CameraPose is the default perspective camera
type CameraPose struct {
	FOV    *float64  `json:"fov,omitempty" yaml:"fov,omitempty" toml:"fov,omitempty"`
	Pos    []float64 `json:"pos,omitempty" yaml:"pos,omitempty" toml:"pos,omitempty"`
	Target []float64 `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
}

// DefaultView is the pose restored by the reset action
type DefaultView struct {
	Camera              CameraPose `json:"camera" yaml:"camera" toml:"camera"`
	ObjectRotationEuler []float64  `json:"objectRotationEuler,omitempty" yaml:"objectRotationEuler,omitempty" toml:"objectRotationEuler,omitempty"`
}

// Spin is the idle auto-rotation about world up
type Spin struct {
	RadPerSec *float64 `json:"radPerSec,omitempty" yaml:"radPerSec,omitempty" toml:"radPerSec,omitempty"`
}

// Topology names the vertices of every face and the vertex opposite each face triple
type Topology struct {
	UpVertexLabel     string              `json:"upVertexLabel,omitempty" yaml:"upVertexLabel,omitempty" toml:"upVertexLabel,omitempty"`
	VertexOrder       []string            `json:"vertexOrder,omitempty" yaml:"vertexOrder,omitempty" toml:"vertexOrder,omitempty"`
	FaceOrder         []string            `json:"faceOrder,omitempty" yaml:"faceOrder,omitempty" toml:"faceOrder,omitempty"`
	FaceVertices      map[string][]string `json:"faceVertices,omitempty" yaml:"faceVertices,omitempty" toml:"faceVertices,omitempty"`
	VertexFaceTriples map[string][]string `json:"vertexFaceTriples,omitempty" yaml:"vertexFaceTriples,omitempty" toml:"vertexFaceTriples,omitempty"`
}

// TOCEntry is one table-of-contents document
type TOCEntry struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Src   string `json:"src" yaml:"src" toml:"src"`
}

// VertexNames returns the semantic vertex names in their assignment order
func (s *Schema) VertexNames() []string {
	if len(s.Topology.VertexOrder) > 0 {
		return append([]string(nil), s.Topology.VertexOrder...)
	}

	seen := make(map[string]bool)
	for name := range s.Labels.Vertices {
		seen[name] = true
	}
	for _, verts := range s.Topology.FaceVertices {
		for _, name := range verts {
			seen[name] = true
		}
	}
	return sortedKeys(seen)
}

// FaceNames returns the face names in mesh order
func (s *Schema) FaceNames() []string {
	if len(s.Topology.FaceOrder) > 0 {
		return append([]string(nil), s.Topology.FaceOrder...)
	}

	seen := make(map[string]bool, len(s.Topology.FaceVertices))
	for name := range s.Topology.FaceVertices {
		seen[name] = true
	}
	return sortedKeys(seen)
}

// VertexLabelKeys returns the keys of the vertex-face triples in sorted order
func (s *Schema) VertexLabelKeys() []string {
	seen := make(map[string]bool, len(s.Topology.VertexFaceTriples))
	for key := range s.Topology.VertexFaceTriples {
		seen[key] = true
	}
	return sortedKeys(seen)
}

// FaceText returns the display text of a face, defaulting to the upper-cased name
func (s *Schema) FaceText(name string) string {
	if f, ok := s.Labels.Faces[name]; ok && f.Text != "" {
		return f.Text
	}
	return strings.ToUpper(name)
}

// VertexKey returns the short label of a vertex, defaulting to its first letter
func (s *Schema) VertexKey(name string) string {
	if v, ok := s.Labels.Vertices[name]; ok && v.Key != "" {
		return v.Key
	}
	for _, r := range name {
		return string(unicode.ToUpper(r))
	}
	return ""
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
