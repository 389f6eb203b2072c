package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gotetra/internal/scene"
	"github.com/philipparndt/gotetra/pkg/schema"
)

var schemaFormat string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the schema in JSON, YAML or TOML",
	Long:  "Print the loaded schema, or the built-in one, in any supported format. Handy as a starting point for a new schema file.",
	Args:  cobra.NoArgs,
	Run:   runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "yaml", "Output format (json, yaml, toml)")
}

func runSchema(cmd *cobra.Command, args []string) {
	format, err := schema.ParseFormat(schemaFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sc, err := scene.LoadSchema(schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading schema: %v\n", err)
		os.Exit(1)
	}
	if err := schema.Encode(os.Stdout, sc, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding schema: %v\n", err)
		os.Exit(1)
	}
}
