package labels

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gotetra/pkg/schema"
	"github.com/philipparndt/gotetra/pkg/solid"
)

func buildLayout(t *testing.T, sc *schema.Schema) (*solid.Solid, *Layout) {
	t.Helper()
	s, _, err := solid.Build(sc, solid.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)
	return s, Build(s, sc)
}

func TestFaceLabels(t *testing.T) {
	s, layout := buildLayout(t, schema.Default())
	require.Len(t, layout.Faces, 4)

	for i, l := range layout.Faces {
		f := s.Faces[i]
		assert.Equal(t, KindFace, l.Kind)
		assert.Equal(t, i, l.FaceIndex)
		assert.Equal(t, f.Name, l.Key())
		assert.Equal(t, schema.Default().FaceText(f.Name), l.Text)

		// centroid sits at r/3 along the normal; inset 0.1 and lift 0.012 leave 0.2453
		want := f.Normal.Mul(1.0/3.0 - 0.10 + 0.012)
		assert.True(t, l.Local.ApproxEqual(want, 1e-9), "%s: expected %v, got %v", f.Name, want, l.Local)
		assert.InDelta(t, 0.34, l.Height, 1e-12)
		assert.Greater(t, l.Width, l.Height)
	}
}

func TestVertexLabelsFromTriples(t *testing.T) {
	s, layout := buildLayout(t, schema.Default())
	require.Len(t, layout.Vertices, 4)

	keys := make([]string, 0, 4)
	for _, l := range layout.Vertices {
		assert.Equal(t, KindVertex, l.Kind)
		assert.Equal(t, -1, l.FaceIndex)
		p, ok := s.Vertex(l.VertexName)
		require.True(t, ok)
		assert.True(t, l.Local.ApproxEqual(p.Mul(VertexPush), 1e-12))
		keys = append(keys, l.Key())
	}
	assert.Equal(t, []string{"Belief", "Evidence", "Likelihood", "Probability"}, keys)
}

func TestVertexLabelsWithoutTriples(t *testing.T) {
	sc := schema.Default()
	sc.Topology.VertexFaceTriples = nil
	sc.Topology.UpVertexLabel = ""
	_, layout := buildLayout(t, sc)

	require.Len(t, layout.Vertices, 4)
	assert.Equal(t, "I", layout.Vertices[0].Text)
	assert.Equal(t, "Identity", layout.Vertices[0].VertexName)
}

func TestVertexKeyFallsBackToName(t *testing.T) {
	l := Label{Kind: KindVertex, VertexName: "Truth"}
	assert.Equal(t, "Truth", l.Key())
}

func TestAllOrder(t *testing.T) {
	_, layout := buildLayout(t, schema.Default())
	all := layout.All()

	require.Len(t, all, 8)
	assert.Equal(t, KindFace, all[3].Kind)
	assert.Equal(t, KindVertex, all[4].Kind)
}

func TestSpriteSize(t *testing.T) {
	w, h := SpriteSize("", VertexSprite, 0.24)
	assert.InDelta(t, 0.24*36.0/92.0, w, 1e-12)
	assert.Equal(t, 0.24, h)

	short, _ := SpriteSize("B", VertexSprite, 0.24)
	long, _ := SpriteSize("Probability", VertexSprite, 0.24)
	assert.Greater(t, long, short)
}
