package solid

import (
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/schema"
)

var quiet = WithLogger(slog.New(slog.DiscardHandler))

func build(t *testing.T, s *schema.Schema) (*Solid, []Warning) {
	t.Helper()
	solid, warnings, err := Build(s, quiet)
	require.NoError(t, err)
	return solid, warnings
}

func TestBuildDefaultSchema(t *testing.T) {
	solid, warnings := build(t, schema.Default())
	assert.Empty(t, warnings)

	require.Len(t, solid.Vertices, 4)
	for i, a := range solid.Vertices {
		assert.InDelta(t, 1.0, a.Position.Length(), 1e-9, a.Name)
		for _, b := range solid.Vertices[i+1:] {
			assert.False(t, a.Position.ApproxEqual(b.Position, VertexEpsilon), "%s and %s coincide", a.Name, b.Name)
		}
	}

	require.Len(t, solid.Faces, 4)
	for _, f := range solid.Faces {
		seen := map[string]bool{}
		for _, v := range f.Vertices {
			_, ok := solid.Vertex(v)
			assert.True(t, ok, "face %s uses unknown vertex %s", f.Name, v)
			seen[v] = true
		}
		assert.Len(t, seen, 3, f.Name)
		assert.GreaterOrEqual(t, f.Normal.Dot(f.Centroid), 0.0, f.Name)
		assert.InDelta(t, 1.0, f.Normal.Length(), 1e-9, f.Name)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	first, _ := build(t, schema.Default())
	second, _ := build(t, schema.Default())

	for i := range first.Vertices {
		assert.True(t, first.Vertices[i].Position.ApproxEqual(second.Vertices[i].Position, 1e-12))
	}
	for i := range first.Faces {
		assert.True(t, first.Faces[i].Normal.ApproxEqual(second.Faces[i].Normal, 1e-12))
		assert.True(t, first.Faces[i].Centroid.ApproxEqual(second.Faces[i].Centroid, 1e-12))
	}
}

func TestSemanticAssignmentOrder(t *testing.T) {
	s := schema.Default()
	s.Topology.UpVertexLabel = ""
	solid, _ := build(t, s)

	k := 1 / math.Sqrt(3)
	expected := map[string]geometry.Vector3{
		"Identity": geometry.NewVector3(-k, k, -k),
		"Data":     geometry.NewVector3(k, k, k),
		"Trust":    geometry.NewVector3(-k, -k, k),
		"Truth":    geometry.NewVector3(k, -k, -k),
	}
	for name, want := range expected {
		got, ok := solid.Vertex(name)
		require.True(t, ok, name)
		assert.True(t, got.ApproxEqual(want, 1e-9), "%s: expected %v, got %v", name, want, got)
	}
	assert.True(t, solid.Alignment.ApproxEqual(geometry.IdentityRotation(), 1e-12))
}

func TestUpVertexAlignment(t *testing.T) {
	s := schema.Default()
	s.Geometry.Radius = schema.Float(2)
	solid, _ := build(t, s)

	// "Belief" resolves to the vertex shared by Data, Truth and Trust
	p, ok := solid.Vertex("Identity")
	require.True(t, ok)
	assert.True(t, p.ApproxEqual(geometry.NewVector3(0, 2, 0), 1e-9), "got %v", p)

	for _, e := range solid.Wireframe {
		assert.InDelta(t, 2.0, e.A.Length(), 1e-9)
		assert.InDelta(t, 2.0, e.B.Length(), 1e-9)
	}
}

func TestUpVertexByName(t *testing.T) {
	s := schema.Default()
	s.Topology.UpVertexLabel = "Truth"
	solid, _ := build(t, s)

	p, _ := solid.Vertex("Truth")
	assert.True(t, p.ApproxEqual(geometry.NewVector3(0, 1, 0), 1e-9), "got %v", p)
}

func TestLabelSites(t *testing.T) {
	solid, _ := build(t, schema.Default())

	assert.Equal(t, []VertexSite{
		{Key: "Belief", Vertex: "Identity"},
		{Key: "Evidence", Vertex: "Data"},
		{Key: "Likelihood", Vertex: "Trust"},
		{Key: "Probability", Vertex: "Truth"},
	}, solid.LabelSites)
}

func TestAmbiguousTripleIsWarning(t *testing.T) {
	s := schema.Default()
	s.Topology.VertexFaceTriples["Edge"] = []string{"Data", "Data", "Truth"}

	solid, warnings := build(t, s)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Edge", warnings[0].Key)
	assert.Len(t, solid.LabelSites, 4)
}

func TestMesh(t *testing.T) {
	solid, _ := build(t, schema.Default())
	m := solid.Mesh

	require.Equal(t, 4, m.TriangleCount())
	assert.Len(t, m.Positions, 12)
	assert.Equal(t, []int{0, 1, 2, 3}, m.TriangleFaces)
	for tri := 0; tri < 4; tri++ {
		face, ok := m.FaceOfTriangle(tri)
		require.True(t, ok)
		for k := 0; k < 3; k++ {
			assert.Equal(t, solid.Faces[face].Color, m.Colors[3*tri+k])
		}
		assert.True(t, m.Triangle(tri).Center().ApproxEqual(solid.Faces[face].Centroid, 1e-12))
	}
	_, ok := m.FaceOfTriangle(4)
	assert.False(t, ok)
}

func TestWireframe(t *testing.T) {
	solid, _ := build(t, schema.Default())
	require.Len(t, solid.Wireframe, 6)

	edge := math.Sqrt(8.0 / 3.0)
	for _, e := range solid.Wireframe {
		assert.InDelta(t, edge, e.A.Distance(e.B), 1e-9)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*schema.Schema)
		want   error
	}{
		{"unknown vertex", func(s *schema.Schema) {
			s.Topology.FaceVertices["Data"] = []string{"Identity", "Trust", "Nowhere"}
		}, ErrUnknownVertex},
		{"degenerate face", func(s *schema.Schema) {
			s.Topology.FaceVertices["Data"] = []string{"Identity", "Trust", "Trust"}
		}, ErrDegenerateFace},
		{"unknown face in triple", func(s *schema.Schema) {
			s.Topology.VertexFaceTriples["Belief"] = []string{"Data", "Truth", "Nowhere"}
		}, ErrUnknownFace},
		{"unknown face in order", func(s *schema.Schema) {
			s.Topology.FaceOrder = []string{"Identity", "Trust", "Truth", "Nowhere"}
		}, ErrUnknownFace},
		{"five vertices", func(s *schema.Schema) {
			s.Topology.VertexOrder = append(s.Topology.VertexOrder, "Extra")
		}, ErrVertexCount},
		{"three faces", func(s *schema.Schema) {
			s.Topology.FaceOrder = []string{"Identity", "Trust", "Truth"}
		}, ErrFaceCount},
		{"unknown up vertex", func(s *schema.Schema) {
			s.Topology.UpVertexLabel = "Nowhere"
		}, ErrUnknownUpVertex},
		{"repeated vertex name", func(s *schema.Schema) {
			s.Topology.VertexOrder = []string{"Identity", "Data", "Trust", "Trust"}
		}, ErrDuplicateName},
		{"repeated face name", func(s *schema.Schema) {
			s.Topology.FaceOrder = []string{"Identity", "Trust", "Trust", "Data"}
		}, ErrDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := schema.Default()
			tt.mutate(s)
			_, _, err := Build(s, quiet)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExtractVerticesNeedsFour(t *testing.T) {
	_, err := extractVertices([]geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0.00001, 0, 0),
		geometry.NewVector3(0, 1, 0),
	})
	assert.ErrorIs(t, err, ErrVertexCount)

	unique, err := extractVertices(CanonicalTetrahedron(1))
	require.NoError(t, err)
	assert.Len(t, unique, 4)
}

func TestSortVertices(t *testing.T) {
	vs := []geometry.Vector3{
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 1),
		geometry.NewVector3(0, 1, -1),
		geometry.NewVector3(-1, 0, 0),
	}
	SortVertices(vs)

	assert.Equal(t, []geometry.Vector3{
		geometry.NewVector3(0, 1, -1),
		geometry.NewVector3(0, 1, 1),
		geometry.NewVector3(-1, 0, 0),
		geometry.NewVector3(1, 0, 0),
	}, vs)
}
