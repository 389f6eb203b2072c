package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/pkg/analysis"
)

var (
	edgesCount    int
	edgesLongest  bool
	edgesShortest bool
)

var edgesCmd = &cobra.Command{
	Use:   "edges",
	Short: "List and measure the wireframe edges",
	Args:  cobra.NoArgs,
	Run:   runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 6, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "Show longest edges first")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest edges first")
}

func runEdges(cmd *cobra.Command, args []string) {
	s := mustLoadScene()
	result := analysis.AnalyzeSolid(s.Solid)

	var edges []analysis.EdgeInfo
	var title string

	if edgesLongest {
		edges = analysis.FindLongestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	} else if edgesShortest {
		edges = analysis.FindShortestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	} else {
		edges = result.AllEdges
		if len(edges) > edgesCount {
			edges = edges[:edgesCount]
		}
		title = fmt.Sprintf("Edges (showing %d of %d)", len(edges), result.EdgeCount)
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Min edge length: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("Max edge length: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("Avg edge length: %.6f units\n\n", result.AvgEdgeLength)

	fmt.Printf("%-6s %-35s %-35s %-15s\n", "Index", "Start", "End", "Length")
	fmt.Println("-----------------------------------------------------------------------------------------------")
	for i, edge := range edges {
		fmt.Printf("%-6d %-35s %-35s %-15.6f\n",
			i+1,
			analysis.FormatVector(edge.Start),
			analysis.FormatVector(edge.End),
			edge.Length)
	}
}
