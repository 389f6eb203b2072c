package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/pkg/analysis"
)

var measureCmd = &cobra.Command{
	Use:   "measure <vertex> <vertex>",
	Short: "Measure the distance between two named vertices",
	Args:  cobra.ExactArgs(2),
	Run:   runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) {
	s := mustLoadScene()

	p1, ok := s.Solid.Vertex(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown vertex %q\n", args[0])
		os.Exit(1)
	}
	p2, ok := s.Solid.Vertex(args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown vertex %q\n", args[1])
		os.Exit(1)
	}

	fmt.Println("Vertex-to-Vertex Measurement")
	fmt.Println("============================")
	fmt.Printf("%s: %s\n", args[0], analysis.FormatVector(p1))
	fmt.Printf("%s: %s\n\n", args[1], analysis.FormatVector(p2))

	d := p2.Sub(p1)
	fmt.Printf("Distance X: %s\n", analysis.FormatMeasurement(math.Abs(d.X), "units"))
	fmt.Printf("Distance Y: %s\n", analysis.FormatMeasurement(math.Abs(d.Y), "units"))
	fmt.Printf("Distance Z: %s\n", analysis.FormatMeasurement(math.Abs(d.Z), "units"))
	fmt.Printf("Total Distance: %s\n", analysis.FormatMeasurement(p1.Distance(p2), "units"))
}
