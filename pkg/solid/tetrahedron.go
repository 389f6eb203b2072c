package solid

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gotetra/pkg/geometry"
)

// VertexEpsilon is the per-coordinate tolerance for treating two positions as one vertex
const VertexEpsilon = 1e-4

// corner directions of the canonical tetrahedron before normalization
var tetraCorners = [4]geometry.Vector3{
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
}

// corner indices of each canonical triangle
var tetraIndices = [12]int{2, 1, 0, 0, 3, 2, 1, 3, 0, 2, 3, 1}

// CanonicalTetrahedron returns the non-indexed triangle list of a regular tetrahedron
// inscribed in a sphere of the given radius, 3 positions per triangle.
func CanonicalTetrahedron(radius float64) []geometry.Vector3 {
	positions := make([]geometry.Vector3, 0, len(tetraIndices))
	for _, idx := range tetraIndices {
		positions = append(positions, tetraCorners[idx].Normalize().Mul(radius))
	}
	return positions
}

// UniqueVertices collapses positions that agree within eps on every coordinate,
// keeping first-seen order.
func UniqueVertices(positions []geometry.Vector3, eps float64) []geometry.Vector3 {
	var unique []geometry.Vector3
	for _, p := range positions {
		seen := false
		for _, u := range unique {
			if u.ApproxEqual(p, eps) {
				seen = true
				break
			}
		}
		if !seen {
			unique = append(unique, p)
		}
	}
	return unique
}

// SortVertices orders vertices by descending Y, then ascending X, then ascending Z.
// Coordinates within VertexEpsilon compare equal and fall through to the next key.
func SortVertices(vertices []geometry.Vector3) {
	sort.SliceStable(vertices, func(i, j int) bool {
		a, b := vertices[i], vertices[j]
		if math.Abs(a.Y-b.Y) >= VertexEpsilon {
			return a.Y > b.Y
		}
		if math.Abs(a.X-b.X) >= VertexEpsilon {
			return a.X < b.X
		}
		if math.Abs(a.Z-b.Z) >= VertexEpsilon {
			return a.Z < b.Z
		}
		return false
	})
}

// extractVertices dedupes the canonical positions and checks there are exactly four
func extractVertices(positions []geometry.Vector3) ([]geometry.Vector3, error) {
	unique := UniqueVertices(positions, VertexEpsilon)
	if len(unique) != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrVertexCount, len(unique))
	}
	return unique, nil
}

// uniqueEdges returns each undirected triangle edge once, in first-seen order
func uniqueEdges(positions []geometry.Vector3) []Edge {
	var edges []Edge
	for i := 0; i+2 < len(positions); i += 3 {
		tri := [3]geometry.Vector3{positions[i], positions[i+1], positions[i+2]}
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			dup := false
			for _, e := range edges {
				if (e.A.ApproxEqual(a, VertexEpsilon) && e.B.ApproxEqual(b, VertexEpsilon)) ||
					(e.A.ApproxEqual(b, VertexEpsilon) && e.B.ApproxEqual(a, VertexEpsilon)) {
					dup = true
					break
				}
			}
			if !dup {
				edges = append(edges, Edge{A: a, B: b})
			}
		}
	}
	return edges
}
