package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"protexai/internal/app"
	perrors "protexai/internal/errors"
)

// version is set at build time via ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "protexai",
	Short:   "ProtexAI - camera rule analytics",
	Version: version,
	Long: `ProtexAI evaluates safety rules over camera detections. The run command
launches the packaged analytics container; the render command runs the
pipeline locally against an exported annotations file.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the analytics container",
	Long: `Run checks that the .env1 environment file exists, creates the out/
directory if needed, and launches kryptoblack/protexai:latest with out/
bind-mounted to /app/out and the environment sourced from .env1.

The container runs in the foreground and its exit status becomes this
command's exit status.`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %s\n", err)
			os.Exit(1)
		}

		status, err := app.Launch(cmd.Context(), cwd)
		if err != nil {
			perrors.HandleError(err)
			os.Exit(1)
		}
		if status != 0 {
			os.Exit(int(status))
		}
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render annotated frames from an exported annotations file",
	Long: `Render parses a detection annotations JSON export, evaluates the
Car-and-Person rule against each frame's regions of interest, sends Slack
notifications when configured in .env1, and writes annotated PNG frames to
the out/ directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		roisFile, _ := cmd.Flags().GetString("rois")

		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %s\n", err)
			os.Exit(1)
		}

		if err := app.Render(cmd.Context(), cwd, file, roisFile); err != nil {
			perrors.HandleError(err)
			os.Exit(1)
		}
	},
}

func init() {
	renderCmd.Flags().StringP("file", "f", "annotations.json", "Path to the annotations JSON export")
	renderCmd.Flags().String("rois", "", "JSON file overriding the default regions of interest")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
