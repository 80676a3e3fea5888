// Package main is the resourcedasm command-line front end: a thin Cobra
// CLI over the container/decode/pefile packages, in the shape of
// saferwall/pe's cmd/pedumper.go (a root command plus one subcommand per
// operation, JSON output for structured dumps). It is an external
// collaborator over the core decoder engine, not part of it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "resourcedasm",
		Short: "Extracts and decodes classic Mac/Win resource containers",
		Long:  "resourcedasm indexes resource forks, Mohawk archives, Dark Castle data files, and PE executables, and decodes their resources into modern images, audio, and text.",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log recoverable per-resource errors to stderr")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("resourcedasm version 0.1.0")
		},
	}

	listCmd := &cobra.Command{
		Use:   "list <file>",
		Short: "List every (type, id) resource in a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args[0], verbose)
		},
	}

	var outDir string
	var decodeType string
	var decodeID int16
	extractCmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Decode every resource in a container and write artifacts to --out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], outDir, verbose)
		},
	}
	extractCmd.Flags().StringVar(&outDir, "out", ".", "directory to write decoded artifacts into")

	decodeCmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode one resource and write it to --out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecodeOne(args[0], decodeType, decodeID, outDir, verbose)
		},
	}
	decodeCmd.Flags().StringVar(&decodeType, "type", "", "four-character resource type tag (required)")
	decodeCmd.Flags().Int16Var(&decodeID, "id", 0, "resource id")
	decodeCmd.Flags().StringVar(&outDir, "out", ".", "directory to write the decoded artifact into")
	_ = decodeCmd.MarkFlagRequired("type")

	listTypesCmd := &cobra.Command{
		Use:   "list-types",
		Short: "List every resource type tag with a registered decoder",
		Run: func(cmd *cobra.Command, args []string) {
			runListTypes()
		},
	}

	peCmd := &cobra.Command{
		Use:   "pe <file>",
		Short: "Dump a PE32 executable's headers, sections, imports, and anomalies as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPEDump(args[0])
		},
	}

	rootCmd.AddCommand(versionCmd, listCmd, extractCmd, decodeCmd, listTypesCmd, peCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
