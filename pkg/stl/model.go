// Package stl reads and writes STL meshes and exports the solid as one.
package stl

import (
	"image/color"

	"github.com/philipparndt/gotetra/pkg/geometry"
	"github.com/philipparndt/gotetra/pkg/solid"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
	// Colors holds one optional color per triangle; nil when the file carried none
	Colors []color.RGBA
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// FromSolid converts the solid's mesh into a model with outward normals and face colors
func FromSolid(name string, s *solid.Solid) *Model {
	m := NewModel(name)
	for i := 0; i < s.Mesh.TriangleCount(); i++ {
		tri := s.Mesh.Triangle(i)
		face, _ := s.Mesh.FaceOfTriangle(i)
		tri.Normal = s.Faces[face].Normal
		m.AddColoredTriangle(tri, s.Faces[face].Color)
	}
	return m
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
	if m.Colors != nil {
		m.Colors = append(m.Colors, color.RGBA{})
	}
}

// AddColoredTriangle adds a triangle with a color
func (m *Model) AddColoredTriangle(triangle geometry.Triangle, c color.RGBA) {
	if m.Colors == nil {
		m.Colors = make([]color.RGBA, len(m.Triangles), cap(m.Triangles))
	}
	m.Triangles = append(m.Triangles, triangle)
	m.Colors = append(m.Colors, c)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}
