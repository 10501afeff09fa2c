package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "inkframe",
	Short: "Prepare photos for 800x480 color e-paper displays",
	Long: `Inkframe is a CLI tool for converting photos into 800x480 24-bit BMP
images for 7-color e-paper photo frames.

Currently supports:
- Single-image conversion with sliding-window crops and a forced resize
- Batch conversion of a whole photo directory
- A stained-glass rendering mode for decorative frames`,
	Version: "0.1.0",
}

var verbose bool

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
