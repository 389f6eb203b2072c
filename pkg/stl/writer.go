package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/philipparndt/gotetra/pkg/geometry"
)

// Write encodes the model as ASCII STL
func Write(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)
	name := strings.ReplaceAll(m.Name, "\n", " ")

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range m.Triangles {
		fmt.Fprintf(bw, "  facet normal %s\n", formatVector(t.Normal))
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(bw, "      vertex %s\n", formatVector(v))
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ASCII STL: %w", err)
	}
	return nil
}

// WriteBinary encodes the model as binary STL, storing colors in the attribute bytes
func WriteBinary(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	// a binary header must not start with "solid" or readers take it for ASCII
	copy(header[:], strings.TrimPrefix(m.Name, "solid"))
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, t := range m.Triangles {
		f := binaryFacet{Normal: f32(t.Normal), V1: f32(t.V1), V2: f32(t.V2), V3: f32(t.V3)}
		if i < len(m.Colors) && m.Colors[i].A != 0 {
			f.Attribute = encodeColor(m.Colors[i])
		}
		if err := binary.Write(bw, binary.LittleEndian, &f); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write binary STL: %w", err)
	}
	return nil
}

func formatVector(v geometry.Vector3) string {
	return fmt.Sprintf("%e %e %e", v.X, v.Y, v.Z)
}

func f32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
