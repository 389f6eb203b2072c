package viewer

import (
	"log/slog"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/labels"
	"github.com/philipparndt/gotetra/pkg/solid"
)

// Rect is the bounding rectangle of the render surface in client coordinates
type Rect struct {
	Left, Top, Width, Height float64
}

// PointerEvent is a pointer-down at client coordinates over the render surface
type PointerEvent struct {
	ClientX, ClientY float64
	Rect             Rect
}

// NDC converts the event position to normalized device coordinates
func (e PointerEvent) NDC() (x, y float64) {
	w, h := e.Rect.Width, e.Rect.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	x = (e.ClientX-e.Rect.Left)/w*2 - 1
	y = -((e.ClientY-e.Rect.Top)/h*2 - 1)
	return x, y
}

// ContentLoader receives the semantic key of every successful pick
type ContentLoader interface {
	LoadKey(key string)
}

// ContentLoaderFunc adapts a function to ContentLoader
type ContentLoaderFunc func(key string)

// LoadKey calls f(key)
func (f ContentLoaderFunc) LoadKey(key string) {
	f(key)
}

// HitKind tells what a pick ray struck
type HitKind int

const (
	HitMesh HitKind = iota
	HitFaceLabel
	HitVertexLabel
)

func (k HitKind) String() string {
	switch k {
	case HitFaceLabel:
		return "face label"
	case HitVertexLabel:
		return "vertex label"
	default:
		return "mesh"
	}
}

// Hit is the nearest intersection of a pick ray
type Hit struct {
	Kind     HitKind
	Key      string
	Distance float64
	Point    geometry.Vector3
	// Triangle is the mesh triangle index, -1 for label hits
	Triangle int
}

// Picker resolves pointer events against the solid and its label sprites
type Picker struct {
	solid  *solid.Solid
	layout *labels.Layout
	state  *ViewState
	loader ContentLoader
	logger *slog.Logger
}

// NewPicker creates a picker. loader may be nil; logger nil means slog.Default().
func NewPicker(s *solid.Solid, layout *labels.Layout, state *ViewState, loader ContentLoader, logger *slog.Logger) *Picker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Picker{solid: s, layout: layout, state: state, loader: loader, logger: logger}
}

// Pick casts a ray through the event position. A hit stops the idle spin and hands the
// key to the content loader; a miss changes nothing.
func (p *Picker) Pick(e PointerEvent) (Hit, bool) {
	x, y := e.NDC()
	hit, ok := p.Intersect(p.state.Camera.Ray(x, y))
	if !ok {
		p.logger.Debug("pick missed", "ndcX", x, "ndcY", y)
		return Hit{}, false
	}

	p.state.SetSpinning(false)
	p.logger.Debug("picked", "kind", hit.Kind, "key", hit.Key, "distance", hit.Distance)
	if p.loader != nil {
		p.loader.LoadKey(hit.Key)
	}
	return hit, true
}

// Intersect returns the nearest hit of ray against the mesh, the face labels and the
// vertex labels, in that order. Equal distances keep the earlier candidate.
func (p *Picker) Intersect(ray geometry.Ray) (Hit, bool) {
	body := p.state.Body
	var best Hit
	found := false

	consider := func(h Hit) {
		if !found || h.Distance < best.Distance {
			best = h
			found = true
		}
	}

	for i := 0; i < p.solid.Mesh.TriangleCount(); i++ {
		tri := p.solid.Mesh.Triangle(i)
		t, ok := ray.IntersectTriangle(body.Apply(tri.V1), body.Apply(tri.V2), body.Apply(tri.V3))
		if !ok {
			continue
		}
		face, _ := p.solid.Mesh.FaceOfTriangle(i)
		consider(Hit{Kind: HitMesh, Key: p.solid.Faces[face].Name, Distance: t, Point: ray.At(t), Triangle: i})
	}

	right, up, _ := p.state.Camera.Basis()
	for _, l := range p.layout.All() {
		t, ok := intersectSprite(ray, body.Apply(l.Local), right, up, l.Width, l.Height)
		if !ok {
			continue
		}
		kind := HitFaceLabel
		if l.Kind == labels.KindVertex {
			kind = HitVertexLabel
		}
		consider(Hit{Kind: kind, Key: l.Key(), Distance: t, Point: ray.At(t), Triangle: -1})
	}
	return best, found
}

// intersectSprite tests a camera-facing quad centered at center
func intersectSprite(ray geometry.Ray, center, right, up geometry.Vector3, width, height float64) (float64, bool) {
	r := right.Mul(width / 2)
	u := up.Mul(height / 2)
	bl := center.Sub(r).Sub(u)
	br := center.Add(r).Sub(u)
	tr := center.Add(r).Add(u)
	tl := center.Sub(r).Add(u)

	if t, ok := ray.IntersectTriangle(bl, br, tr); ok {
		return t, true
	}
	return ray.IntersectTriangle(bl, tr, tl)
}
