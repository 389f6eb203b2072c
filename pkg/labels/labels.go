// Package labels lays out the face and vertex label sprites of a built solid.
package labels

import (
	"math"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/schema"
	"github.com/philipparndt/gotetra/pkg/solid"
)

// VertexPush moves vertex labels outward so they sit just off the surface
const VertexPush = 1.07

// Kind discriminates face labels from vertex labels
type Kind int

const (
	KindFace Kind = iota
	KindVertex
)

func (k Kind) String() string {
	if k == KindVertex {
		return "vertex"
	}
	return "face"
}

// Label is one sprite attached to the solid. Face labels carry FaceIndex/FaceName,
// vertex labels carry VertexName; FaceIndex is -1 for vertex labels.
type Label struct {
	Kind       Kind
	Text       string
	FaceIndex  int
	FaceName   string
	VertexName string
	// Local is the anchor in solid coordinates; the world position follows the solid's transform
	Local  geometry.Vector3
	Width  float64
	Height float64
}

// Key is the semantic key used for picking and content lookup
func (l Label) Key() string {
	if l.Kind == KindFace {
		return l.FaceName
	}
	if l.Text != "" {
		return l.Text
	}
	return l.VertexName
}

// Layout holds every label of a solid, faces in face order then vertices
type Layout struct {
	Faces    []Label
	Vertices []Label
}

// All returns face labels followed by vertex labels
func (l *Layout) All() []Label {
	all := make([]Label, 0, len(l.Faces)+len(l.Vertices))
	all = append(all, l.Faces...)
	return append(all, l.Vertices...)
}

// Build places one label per face and one per vertex label site
func Build(s *solid.Solid, sc *schema.Schema) *Layout {
	style := sc.LabelStyle()
	layout := &Layout{}

	inset := style.FaceInset * s.Radius
	lift := style.FaceNormalLift * s.Radius
	for i, f := range s.Faces {
		text := sc.FaceText(f.Name)
		w, h := SpriteSize(text, FaceSprite, style.FaceScale)
		layout.Faces = append(layout.Faces, Label{
			Kind:      KindFace,
			Text:      text,
			FaceIndex: i,
			FaceName:  f.Name,
			Local:     FaceAnchor(f, inset, lift),
			Width:     w,
			Height:    h,
		})
	}

	addVertex := func(text, vertex string) {
		p, ok := s.Vertex(vertex)
		if !ok {
			return
		}
		w, h := SpriteSize(text, VertexSprite, style.VertexScale)
		layout.Vertices = append(layout.Vertices, Label{
			Kind:       KindVertex,
			Text:       text,
			FaceIndex:  -1,
			VertexName: vertex,
			Local:      p.Mul(VertexPush),
			Width:      w,
			Height:     h,
		})
	}

	if len(sc.Topology.VertexFaceTriples) > 0 {
		for _, site := range s.LabelSites {
			addVertex(site.Key, site.Vertex)
		}
	} else {
		for _, v := range s.Vertices {
			addVertex(sc.VertexKey(v.Name), v.Name)
		}
	}
	return layout
}

// FaceAnchor insets the centroid toward the solid's center and lifts it along the normal
func FaceAnchor(f solid.Face, inset, lift float64) geometry.Vector3 {
	length := math.Max(1e-6, f.Centroid.Length())
	inward := f.Centroid.Mul(-inset / length)
	return f.Centroid.Add(inward).Add(f.Normal.Mul(lift))
}
