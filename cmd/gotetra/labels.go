package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/pkg/analysis"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the face and vertex labels with their anchors",
	Args:  cobra.NoArgs,
	Run:   runLabels,
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}

func runLabels(cmd *cobra.Command, args []string) {
	s := mustLoadScene()

	fmt.Println("Labels")
	fmt.Println("======")
	fmt.Printf("%-7s %-12s %-12s %-12s %-35s %s\n", "Kind", "Key", "Text", "Attached", "Anchor", "Size")
	for _, l := range s.Layout.All() {
		attached := l.FaceName
		if attached == "" {
			attached = l.VertexName
		}
		fmt.Printf("%-7s %-12s %-12s %-12s %-35s %.3f x %.3f\n",
			l.Kind, l.Key(), l.Text, attached, analysis.FormatVector(l.Local), l.Width, l.Height)
	}

	if len(s.Warnings) > 0 {
		fmt.Println()
		for _, w := range s.Warnings {
			fmt.Printf("Warning: %s\n", w)
		}
	}
}
