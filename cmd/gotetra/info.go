package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/pkg/analysis"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display general information about the solid",
	Long:  "Show the vertices, faces, dimensions, surface area, volume and edge statistics of the built solid.",
	Args:  cobra.NoArgs,
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	s := mustLoadScene()
	result := analysis.AnalyzeSolid(s.Solid)

	fmt.Println("Tetrahedron Information")
	fmt.Println("=======================")
	fmt.Printf("Title: %s\n", s.Title())
	if schemaPath != "" {
		fmt.Printf("Schema: %s\n", schemaPath)
	}
	fmt.Printf("Radius: %.6f\n\n", s.Solid.Radius)

	fmt.Println("Vertices:")
	for _, v := range s.Solid.Vertices {
		fmt.Printf("  %-12s %s\n", v.Name, analysis.FormatVector(v.Position))
	}
	fmt.Println()

	fmt.Println("Faces:")
	for _, f := range result.Faces {
		fmt.Printf("  %-12s normal %s  area %.6f\n", f.Name, analysis.FormatVector(f.Normal), f.Area)
	}
	fmt.Println()

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Height (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Depth (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Printf("  Surface Area: %.6f square units\n", result.SurfaceArea)
	fmt.Printf("  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", result.AvgEdgeLength)

	if len(s.Warnings) > 0 {
		fmt.Println()
		fmt.Println("Warnings:")
		for _, w := range s.Warnings {
			fmt.Printf("  %s\n", w)
		}
	}
}
