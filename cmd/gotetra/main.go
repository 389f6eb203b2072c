package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/internal/logging"
	"github.com/philipparndt/gotetra/internal/scene"
	"github.com/philipparndt/gotetra/version"
)

var (
	schemaPath string
	contentDir string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gotetra",
	Short: "Inspect a labeled tetrahedron schema from the command line",
	Long: `gotetra builds the labeled tetrahedron described by a schema file (JSON, YAML or TOML)
and inspects it without a window: geometry, label placement, one visibility pass,
ray picks, STL export and the markdown content behind each key.

Without --schema the built-in Belief schema is used.`,
	Version: version.GetFullVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Schema file (.json, .yaml, .toml)")
	rootCmd.PersistentFlags().StringVar(&contentDir, "content", "", "Directory of markdown content")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// mustLoadScene builds the scene or exits
func mustLoadScene() *scene.Scene {
	s, err := scene.Load(schemaPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading schema: %v\n", err)
		os.Exit(1)
	}
	return s
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
