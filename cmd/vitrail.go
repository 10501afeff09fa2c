package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/alde/inkframe/pkg/converter"
	"github.com/alde/inkframe/pkg/palette"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

var (
	vitrailPalettePath string
	vitrailSmooth      float64
	vitrailMaxColors   int
)

var vitrailCmd = &cobra.Command{
	Use:   "vitrail [input image] [output image]",
	Short: "Render a photo as stained glass",
	Long: `Render a photo as a stained-glass picture.

Each pixel is remapped to the nearest palette color without dithering,
the flat color regions are optionally smoothed, and the edges between
regions are traced in black like the lead came of a stained-glass window.
The result keeps the input geometry and is written as a PNG by default.

Examples:
  inkframe vitrail photo.jpg
  inkframe vitrail photo.jpg window.png --colors 8 --smooth 3`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runVitrail,
}

func init() {
	rootCmd.AddCommand(vitrailCmd)

	vitrailCmd.Flags().StringVar(&vitrailPalettePath, "palette", "N-color.act", "Path to the palette (.act file)")
	vitrailCmd.Flags().Float64Var(&vitrailSmooth, "smooth", 0, "Gaussian blur radius applied before edge tracing (0 = off)")
	vitrailCmd.Flags().IntVar(&vitrailMaxColors, "colors", 0, "Use only the first N palette colors (0 = all)")
}

func runVitrail(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if err := validateInputFile(inputPath); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}

	outputPath := filepath.Join(filepath.Dir(inputPath), "vitrail_"+trimImageExt(filepath.Base(inputPath))+".png")
	if len(args) == 2 {
		outputPath = args[1]
	}

	pal, err := palette.LoadACT(vitrailPalettePath)
	if err != nil {
		return fmt.Errorf("palette load failed: %w", err)
	}

	img, err := converter.DecodeImage(inputPath)
	if err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}

	out := converter.Vitrail(img, pal, converter.VitrailOptions{
		Smooth:    vitrailSmooth,
		MaxColors: vitrailMaxColors,
	})

	if err := imaging.Save(out, outputPath); err != nil {
		return fmt.Errorf("failed to save output: %w", err)
	}

	if verbose {
		fmt.Printf("Stained-glass image saved to %s\n", outputPath)
	}

	return nil
}
