package solid

import (
	"fmt"
	"image/color"

	"github.com/philipparndt/gotetra/pkg/geometry"
)

// Mesh is the renderable non-indexed triangle soup: 3 positions per face in face order
type Mesh struct {
	Positions []geometry.Vector3
	Colors    []color.RGBA
	// TriangleFaces maps a triangle index to the index of the face that owns it
	TriangleFaces []int
}

func newMesh(faces []Face, position func(string) geometry.Vector3) (Mesh, error) {
	m := Mesh{
		Positions:     make([]geometry.Vector3, 0, len(faces)*3),
		Colors:        make([]color.RGBA, 0, len(faces)*3),
		TriangleFaces: make([]int, 0, len(faces)),
	}
	for i, f := range faces {
		for _, v := range f.Vertices {
			m.Positions = append(m.Positions, position(v))
			m.Colors = append(m.Colors, f.Color)
		}
		m.TriangleFaces = append(m.TriangleFaces, i)
	}

	if len(m.Positions) != 3*len(m.TriangleFaces) {
		return Mesh{}, fmt.Errorf("mesh has %d positions for %d triangles", len(m.Positions), len(m.TriangleFaces))
	}
	for tri, face := range m.TriangleFaces {
		if face < 0 || face >= len(faces) {
			return Mesh{}, fmt.Errorf("triangle %d maps to missing face %d", tri, face)
		}
	}
	return m, nil
}

// TriangleCount returns the number of triangles in the mesh
func (m Mesh) TriangleCount() int {
	return len(m.TriangleFaces)
}

// Triangle returns triangle i with its winding normal
func (m Mesh) Triangle(i int) geometry.Triangle {
	a, b, c := m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]
	t := geometry.NewTriangle(geometry.Vector3{}, a, b, c)
	t.Normal = t.CalculateNormal()
	return t
}

// FaceOfTriangle returns the face index owning triangle i
func (m Mesh) FaceOfTriangle(i int) (int, bool) {
	if i < 0 || i >= len(m.TriangleFaces) {
		return -1, false
	}
	return m.TriangleFaces[i], true
}
