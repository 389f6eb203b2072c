package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/internal/scene"
	"github.com/philipparndt/gotetra/pkg/content"
)

var contentHTML bool

var contentCmd = &cobra.Command{
	Use:   "content [key]",
	Short: "Print the markdown behind a key",
	Long: `Resolve a key the way a click does: a table of contents id, then <key>.md in the
content directory, then the schema's default note. Without a key the table of contents
is listed.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runContent,
}

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.Flags().BoolVar(&contentHTML, "html", false, "Render the document as HTML")
}

func runContent(cmd *cobra.Command, args []string) {
	sc, err := scene.LoadSchema(schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading schema: %v\n", err)
		os.Exit(1)
	}
	source := content.NewDirSource(contentDir, sc)

	if len(args) == 0 {
		fmt.Println("Table of Contents")
		fmt.Println("=================")
		for _, e := range source.Entries() {
			fmt.Printf("  %-16s %-24s %s\n", e.ID, e.Title, e.Src)
		}
		return
	}

	doc, err := source.Open(context.Background(), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if contentHTML {
		os.Stdout.Write(content.RenderHTML(doc.Markdown))
		return
	}
	fmt.Print(doc.Markdown)
}
