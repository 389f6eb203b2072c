package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/pkg/stl"
)

var exportBinary bool

var exportCmd = &cobra.Command{
	Use:   "export <file.stl>",
	Short: "Export the solid as an STL file",
	Long:  "Write the four faces of the solid as STL, ASCII by default. Binary files carry the face colors.",
	Args:  cobra.ExactArgs(1),
	Run:   runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVarP(&exportBinary, "binary", "b", false, "Write binary STL")
}

func runExport(cmd *cobra.Command, args []string) {
	s := mustLoadScene()
	model := stl.FromSolid(s.Title(), s.Solid)

	f, err := os.Create(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
		os.Exit(1)
	}

	if exportBinary {
		err = stl.WriteBinary(f, model)
	} else {
		err = stl.Write(f, model)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing STL: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d triangles to %s\n", model.TriangleCount(), args[0])
}
