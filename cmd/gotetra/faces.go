package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/pkg/analysis"
)

var facesByOutward bool

type faceRow struct {
	Name      string
	Area      float64
	Perimeter float64
	Vertices  string
	Info      analysis.FaceInfo
}

var facesCmd = &cobra.Command{
	Use:   "faces",
	Short: "Analyze the four faces of the solid",
	Long:  "Display area, perimeter, centroid, outward normal and corner vertices of every face.",
	Args:  cobra.NoArgs,
	Run:   runFaces,
}

func init() {
	rootCmd.AddCommand(facesCmd)
	facesCmd.Flags().BoolVar(&facesByOutward, "by-distance", false, "Sort by distance of the face plane from the center")
}

func runFaces(cmd *cobra.Command, args []string) {
	s := mustLoadScene()
	result := analysis.AnalyzeSolid(s.Solid)

	rows := make([]faceRow, 0, len(result.Faces))
	for i, info := range result.Faces {
		tri := s.Solid.Mesh.Triangle(i)
		fi, _ := s.Solid.FaceIndex(info.Name)
		face := s.Solid.Faces[fi]
		rows = append(rows, faceRow{
			Name:      info.Name,
			Area:      info.Area,
			Perimeter: tri.Perimeter(),
			Vertices:  fmt.Sprintf("%s, %s, %s", face.Vertices[0], face.Vertices[1], face.Vertices[2]),
			Info:      info,
		})
	}

	if facesByOutward {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Info.Outward > rows[j].Info.Outward
		})
	}

	fmt.Println("Face Analysis")
	fmt.Println("=============")
	fmt.Printf("Total faces: %d\n", len(rows))
	fmt.Printf("Surface area: %.6f square units\n\n", result.SurfaceArea)

	for _, r := range rows {
		fmt.Printf("%s\n", r.Name)
		fmt.Printf("  Vertices: %s\n", r.Vertices)
		fmt.Printf("  Area: %.6f  Perimeter: %.6f\n", r.Area, r.Perimeter)
		fmt.Printf("  Centroid: %s\n", analysis.FormatVector(r.Info.Centroid))
		fmt.Printf("  Normal: %s  (plane distance %.6f)\n", analysis.FormatVector(r.Info.Normal), r.Info.Outward)
	}
}
