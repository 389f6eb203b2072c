// Package solid builds the semantically labeled tetrahedron from a schema.
package solid

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/schema"
)

// Construction errors. Any of these aborts the build.
var (
	ErrVertexCount     = errors.New("expected 4 unique tetrahedron vertices")
	ErrUnknownVertex   = errors.New("unknown vertex")
	ErrUnknownFace     = errors.New("unknown face")
	ErrDegenerateFace  = errors.New("face needs 3 distinct vertices")
	ErrFaceCount       = errors.New("expected 4 faces")
	ErrUnknownUpVertex = errors.New("unknown up vertex label")
	ErrDuplicateName   = errors.New("duplicate name")
)

// Vertex is a named corner of the solid in local coordinates
type Vertex struct {
	Name     string
	Position geometry.Vector3
}

// Face is a named triangle with its outward normal and color
type Face struct {
	Name     string
	Vertices [3]string
	Centroid geometry.Vector3
	Normal   geometry.Vector3
	Color    color.RGBA
}

// Edge is one wireframe segment
type Edge struct {
	A, B geometry.Vector3
}

// VertexSite is a vertex label key resolved to the vertex shared by its three faces
type VertexSite struct {
	Key    string
	Vertex string
}

// Warning is a recoverable construction problem
type Warning struct {
	Key     string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Key, w.Message)
}

// Solid is the constructed tetrahedron. It is never rebuilt; only the transform of the
// group holding it changes afterwards.
type Solid struct {
	Radius     float64
	Vertices   []Vertex
	Faces      []Face
	Mesh       Mesh
	Wireframe  []Edge
	Alignment  geometry.Rotation
	LabelSites []VertexSite
}

// Option configures Build
type Option func(*builder)

// WithLogger routes construction warnings to logger
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

type builder struct {
	schema   *schema.Schema
	logger   *slog.Logger
	warnings []Warning
}

// Build constructs the solid described by s. It is deterministic: the same schema always
// yields the same positions, normals and centroids.
func Build(s *schema.Schema, opts ...Option) (*Solid, []Warning, error) {
	b := &builder{schema: s, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	solid, err := b.build()
	if err != nil {
		return nil, nil, err
	}
	return solid, b.warnings, nil
}

func (b *builder) warn(key, format string, args ...any) {
	w := Warning{Key: key, Message: fmt.Sprintf(format, args...)}
	b.warnings = append(b.warnings, w)
	b.logger.Warn("solid construction", "key", w.Key, "problem", w.Message)
}

func (b *builder) build() (*Solid, error) {
	radius := b.schema.Radius()
	canonical := CanonicalTetrahedron(radius)

	corners, err := extractVertices(canonical)
	if err != nil {
		return nil, err
	}

	names := b.schema.VertexNames()
	if len(names) != 4 {
		return nil, fmt.Errorf("%w: schema declares %d vertex names %v", ErrVertexCount, len(names), names)
	}
	if err := checkDistinct(names); err != nil {
		return nil, err
	}

	SortVertices(corners)
	solid := &Solid{Radius: radius}
	for i, name := range names {
		solid.Vertices = append(solid.Vertices, Vertex{Name: name, Position: corners[i]})
	}

	if err := b.assignFaces(solid); err != nil {
		return nil, err
	}
	if err := b.resolveSites(solid); err != nil {
		return nil, err
	}

	alignment, err := b.alignment(solid)
	if err != nil {
		return nil, err
	}
	solid.Alignment = alignment
	for i := range solid.Vertices {
		solid.Vertices[i].Position = alignment.Apply(solid.Vertices[i].Position)
	}
	for _, e := range uniqueEdges(canonical) {
		solid.Wireframe = append(solid.Wireframe, Edge{A: alignment.Apply(e.A), B: alignment.Apply(e.B)})
	}

	b.buildFaceGeometry(solid)
	mesh, err := newMesh(solid.Faces, func(name string) geometry.Vector3 {
		p, _ := solid.Vertex(name)
		return p
	})
	if err != nil {
		return nil, err
	}
	solid.Mesh = mesh

	b.logger.Debug("solid built",
		"radius", radius,
		"vertices", len(solid.Vertices),
		"faces", len(solid.Faces),
		"labelSites", len(solid.LabelSites),
		"warnings", len(b.warnings))
	return solid, nil
}

// assignFaces resolves the face topology without geometry
func (b *builder) assignFaces(solid *Solid) error {
	faceNames := b.schema.FaceNames()
	if len(faceNames) != 4 {
		return fmt.Errorf("%w: got %d %v", ErrFaceCount, len(faceNames), faceNames)
	}
	if err := checkDistinct(faceNames); err != nil {
		return err
	}

	for _, name := range faceNames {
		verts, ok := b.schema.Topology.FaceVertices[name]
		if !ok {
			return fmt.Errorf("%w: %q has no faceVertices entry", ErrUnknownFace, name)
		}
		if len(verts) != 3 || verts[0] == verts[1] || verts[1] == verts[2] || verts[0] == verts[2] {
			return fmt.Errorf("%w: %q has %v", ErrDegenerateFace, name, verts)
		}
		for _, v := range verts {
			if _, ok := solid.Vertex(v); !ok {
				return fmt.Errorf("%w: %q referenced by face %q", ErrUnknownVertex, v, name)
			}
		}
		if c := b.schema.Labels.Faces[name].Color; c != "" {
			if _, err := schema.ParseColor(c); err != nil {
				b.logger.Debug("face color fallback", "face", name, "err", err)
			}
		}
		solid.Faces = append(solid.Faces, Face{
			Name:     name,
			Vertices: [3]string{verts[0], verts[1], verts[2]},
			Color:    b.schema.FaceColor(name),
		})
	}
	return nil
}

// resolveSites intersects each label's three faces down to the one vertex they share
func (b *builder) resolveSites(solid *Solid) error {
	for _, key := range b.schema.VertexLabelKeys() {
		vertex, err := solid.vertexOfFaces(b.schema.Topology.VertexFaceTriples[key])
		if errors.Is(err, errAmbiguous) {
			b.warn(key, "%v", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("vertex label %q: %w", key, err)
		}
		solid.LabelSites = append(solid.LabelSites, VertexSite{Key: key, Vertex: vertex})
	}
	return nil
}

// alignment rotates the up vertex onto the world vertical axis
func (b *builder) alignment(solid *Solid) (geometry.Rotation, error) {
	up := b.schema.Topology.UpVertexLabel
	if up == "" {
		return geometry.IdentityRotation(), nil
	}

	name := ""
	if _, ok := solid.Vertex(up); ok {
		name = up
	}
	for _, site := range solid.LabelSites {
		if name == "" && site.Key == up {
			name = site.Vertex
		}
	}
	if name == "" {
		return geometry.Rotation{}, fmt.Errorf("%w: %q", ErrUnknownUpVertex, up)
	}

	p, _ := solid.Vertex(name)
	return geometry.RotationBetween(p, geometry.Up), nil
}

func (b *builder) buildFaceGeometry(solid *Solid) {
	for i := range solid.Faces {
		f := &solid.Faces[i]
		a, _ := solid.Vertex(f.Vertices[0])
		bb, _ := solid.Vertex(f.Vertices[1])
		c, _ := solid.Vertex(f.Vertices[2])

		tri := geometry.NewTriangle(geometry.Vector3{}, a, bb, c)
		f.Centroid = tri.Center()
		f.Normal = tri.CalculateNormal()
		if f.Normal.Dot(f.Centroid) < 0 {
			f.Normal = f.Normal.Neg()
		}
	}
}

// Vertex returns the local position of a named vertex
func (s *Solid) Vertex(name string) (geometry.Vector3, bool) {
	for _, v := range s.Vertices {
		if v.Name == name {
			return v.Position, true
		}
	}
	return geometry.Vector3{}, false
}

// FaceIndex returns the position of a named face in the face list
func (s *Solid) FaceIndex(name string) (int, bool) {
	for i, f := range s.Faces {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

// FaceHasVertex reports whether the face at index uses the named vertex
func (s *Solid) FaceHasVertex(index int, vertex string) bool {
	if index < 0 || index >= len(s.Faces) {
		return false
	}
	for _, v := range s.Faces[index].Vertices {
		if v == vertex {
			return true
		}
	}
	return false
}

var errAmbiguous = errors.New("face intersection is not a single vertex")

// vertexOfFaces returns the one vertex shared by all the given faces
func (s *Solid) vertexOfFaces(faces []string) (string, error) {
	if len(faces) != 3 {
		return "", fmt.Errorf("%w: need 3 faces, got %d", errAmbiguous, len(faces))
	}

	var shared []string
	for _, v := range s.Vertices {
		inAll := true
		for _, name := range faces {
			idx, ok := s.FaceIndex(name)
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrUnknownFace, name)
			}
			if !s.FaceHasVertex(idx, v.Name) {
				inAll = false
			}
		}
		if inAll {
			shared = append(shared, v.Name)
		}
	}
	if len(shared) != 1 {
		return "", fmt.Errorf("%w: %v share %v", errAmbiguous, faces, shared)
	}
	return shared[0], nil
}

func checkDistinct(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("%w %q", ErrDuplicateName, n)
		}
		seen[n] = true
	}
	return nil
}
