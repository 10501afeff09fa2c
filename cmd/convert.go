package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alde/inkframe/pkg/converter"
	"github.com/spf13/cobra"
)

var convertPalettePath string

var convertCmd = &cobra.Command{
	Use:   "convert [input image] [output basename]",
	Short: "Convert a photo into 800x480 BMP images for the display",
	Long: `Convert a photo into one or more 800x480 24-bit BMP images.

The image is first resized proportionally to a width of 800 pixels. If the
resulting height is at least 480 pixels, up to four 800x480 crops are taken
at sliding vertical offsets (top, upper, lower, bottom) along with one
forced non-proportional resize. Shorter images get a single forced resize.
Every output is dithered against the display palette before it is written.

Examples:
  inkframe convert photo.jpg
  inkframe convert photo.jpg frame01 --palette N-color.act
  inkframe convert holiday.webp -v`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertPalettePath, "palette", "p", "N-color.act", "Path to the display palette (.act file)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if err := validateInputFile(inputPath); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}

	// Output basename defaults to the input path without its extension.
	outputBase := trimImageExt(inputPath)
	if len(args) == 2 {
		outputBase = trimImageExt(args[1])
	}

	opts := converter.Options{
		InputPath:   inputPath,
		OutputBase:  outputBase,
		PalettePath: convertPalettePath,
		Verbose:     verbose,
	}

	conv := converter.New(opts)
	return conv.Convert()
}

// trimImageExt strips a trailing image extension so "photo.jpg" and
// "photo" produce the same output names.
func trimImageExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func validateInputFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !converter.IsSupportedInput(ext) {
		return fmt.Errorf("unsupported input format: %s", ext)
	}

	return nil
}
