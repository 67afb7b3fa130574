// Package main is the entry point for the als2flp CLI
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/james-see/als2flp/pkg/api"
	"github.com/james-see/als2flp/pkg/converter"
	"github.com/james-see/als2flp/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile string
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "als2flp",
	Short: "Convert Ableton Live projects to FL Studio",
	Long: `als2flp converts Ableton Live sets (.als) into FL Studio project
files (.flp) or standard MIDI files, routing through a neutral
intermediate representation of tracks, clips, notes and generators.

Examples:
  als2flp convert song.als -o song.flp
  als2flp flp song.als
  als2flp mid song.als -o song.mid
  als2flp tui
  als2flp serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var convertCmd = &cobra.Command{
	Use:   "convert <input.als>",
	Short: "Convert to the format implied by the output extension",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var flpCmd = &cobra.Command{
	Use:   "flp <input.als>",
	Short: "Convert an Ableton Live set to an FL Studio project",
	Args:  cobra.ExactArgs(1),
	RunE:  runFLP,
}

var midCmd = &cobra.Command{
	Use:   "mid <input.als>",
	Short: "Convert an Ableton Live set to a standard MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMID,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Convert command
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	_ = convertCmd.MarkFlagRequired("output")

	// flp command
	flpCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .flp file path")

	// mid command
	midCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(flpCmd)
	rootCmd.AddCommand(midCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func getOutputPath(input, defaultExt string) string {
	if outputFile != "" {
		return outputFile
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + defaultExt
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	conv := converter.NewDefault()

	fmt.Printf("Converting %s -> %s\n", input, outputFile)
	if err := conv.ConvertFile(input, outputFile); err != nil {
		return err
	}
	fmt.Println("Conversion complete!")
	return nil
}

func runFLP(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".flp")

	conv := converter.NewDefault()
	if err := conv.ConvertFile(input, output); err != nil {
		return err
	}

	fmt.Printf("Converted %s -> %s\n", input, output)
	return nil
}

func runMID(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".mid")

	conv := converter.NewDefault()
	if err := conv.ConvertFile(input, output); err != nil {
		return err
	}

	fmt.Printf("Converted %s -> %s\n", input, output)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
