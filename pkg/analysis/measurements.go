// Package analysis computes statistics of a built solid.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/solid"
)

// EdgeInfo contains information about a wireframe edge
type EdgeInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// FaceInfo describes one named face
type FaceInfo struct {
	Name     string
	Area     float64
	Centroid geometry.Vector3
	Normal   geometry.Vector3
	// Outward is normal·centroid, never negative for a valid solid
	Outward float64
}

// MeasurementResult contains various measurements of a solid
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
	Faces         []FaceInfo
}

// AnalyzeSolid performs comprehensive analysis on a solid
func AnalyzeSolid(s *solid.Solid) *MeasurementResult {
	points := make([]geometry.Vector3, 0, len(s.Vertices))
	for _, v := range s.Vertices {
		points = append(points, v.Position)
	}

	result := &MeasurementResult{
		BoundingBox:   geometry.BoundingBoxOf(points...),
		TriangleCount: s.Mesh.TriangleCount(),
		AllEdges:      make([]EdgeInfo, 0, len(s.Wireframe)),
	}
	result.Dimensions = result.BoundingBox.Size()
	result.Volume = tetraVolume(points)

	for i := 0; i < s.Mesh.TriangleCount(); i++ {
		area := s.Mesh.Triangle(i).Area()
		result.SurfaceArea += area

		face, _ := s.Mesh.FaceOfTriangle(i)
		f := s.Faces[face]
		result.Faces = append(result.Faces, FaceInfo{
			Name:     f.Name,
			Area:     area,
			Centroid: f.Centroid,
			Normal:   f.Normal,
			Outward:  f.Normal.Dot(f.Centroid),
		})
	}

	// Collect all edges
	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, e := range s.Wireframe {
		length := e.A.Distance(e.B)
		result.AllEdges = append(result.AllEdges, EdgeInfo{Start: e.A, End: e.B, Length: length})

		totalLength += length
		minLength = math.Min(minLength, length)
		maxLength = math.Max(maxLength, length)
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// tetraVolume is |det(a-d, b-d, c-d)| / 6
func tetraVolume(p []geometry.Vector3) float64 {
	if len(p) != 4 {
		return 0
	}
	a, b, c := p[0].Sub(p[3]), p[1].Sub(p[3]), p[2].Sub(p[3])
	return math.Abs(a.Dot(b.Cross(c))) / 6
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}

	return edges[:count]
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
