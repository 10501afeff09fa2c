package cmd

import (
	"fmt"
	"os"

	"github.com/alde/inkframe/pkg/converter"
	"github.com/spf13/cobra"
)

var (
	batchPalettePath string
	batchWorkerCount int
)

var batchCmd = &cobra.Command{
	Use:   "batch [directory]",
	Short: "Convert every photo in a directory",
	Long: `Convert every supported photo in a directory into an 800x480 BMP.

Each image is resized straight to the display geometry, dithered against
the display palette, and written next to the originals as 1.bmp, 2.bmp and
so on, in sorted filename order. This is the bulk-load mode for filling a
frame's SD card from a photo dump.

Examples:
  inkframe batch ./photos
  inkframe batch ./photos --palette N-color.act --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchPalettePath, "palette", "N-color.act", "Path to the display palette (.act file)")
	batchCmd.Flags().IntVar(&batchWorkerCount, "workers", 0, "Number of worker goroutines (0 = auto)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if err := validateBatchDir(dir); err != nil {
		return fmt.Errorf("directory validation failed: %w", err)
	}

	opts := converter.BatchOptions{
		Dir:         dir,
		PalettePath: batchPalettePath,
		WorkerCount: batchWorkerCount,
		Verbose:     verbose,
	}

	return converter.ConvertDir(opts)
}

func validateBatchDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", path)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}
	return nil
}
