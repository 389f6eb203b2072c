package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/internal/app"
	"github.com/philipparndt/gotetra/internal/logging"
	"github.com/philipparndt/gotetra/version"
)

var (
	schemaPath string
	contentDir string
	watch      bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gotetra-gui [schema]",
	Short: "Interactive labeled tetrahedron viewer",
	Long: `gotetra-gui shows a labeled tetrahedron built from a schema file (JSON, YAML or TOML).
Drag to orbit, scroll to zoom, click a face or label to open its content, double-click
a face to pin it. Without a schema the built-in Belief schema is shown.`,
	Version: version.GetFullVersion(),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			schemaPath = args[0]
		}
		return app.Run(app.Options{
			SchemaPath: schemaPath,
			ContentDir: contentDir,
			Watch:      watch,
			Logger:     logging.Setup(verbose),
		})
	},
}

func init() {
	rootCmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (.json, .yaml, .toml)")
	rootCmd.Flags().StringVar(&contentDir, "content", "", "Directory of markdown content")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", true, "Reload schema and content when files change")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
