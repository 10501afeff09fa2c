package converter

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"time"

	"github.com/alde/inkframe/pkg/palette"
	"github.com/dustin/go-humanize"
	"golang.org/x/image/bmp"
)

// Options contains conversion settings for a single photo.
type Options struct {
	InputPath   string
	OutputBase  string
	PalettePath string
	Verbose     bool
}

// Converter runs the photo-to-BMP pipeline for one input image.
type Converter struct {
	options   Options
	quantizer *Quantizer
	stats     ConvertStats
	startTime time.Time
}

// ConvertStats tracks conversion metrics.
type ConvertStats struct {
	InputFileSize  uint64
	OutputFileSize uint64
	SourceWidth    int
	SourceHeight   int
	ResizedHeight  int
	OutputCount    int
	PaletteColors  int
	ProcessingTime time.Duration
}

// New creates a new converter instance.
func New(opts Options) *Converter {
	return &Converter{
		options:   opts,
		startTime: time.Now(),
	}
}

// Convert runs the pipeline: decode, proportional resize, output
// planning, cropping or forced resizing, palette dithering, and BMP
// encoding. The first failed write aborts the remaining outputs.
func (c *Converter) Convert() error {
	pal, err := palette.LoadACT(c.options.PalettePath)
	if err != nil {
		return fmt.Errorf("palette load failed: %w", err)
	}
	c.quantizer = NewQuantizer(pal)
	c.stats.PaletteColors = pal.Len()

	img, err := DecodeImage(c.options.InputPath)
	if err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}

	b := img.Bounds()
	c.stats.SourceWidth = b.Dx()
	c.stats.SourceHeight = b.Dy()

	if info, err := os.Stat(c.options.InputPath); err == nil {
		c.stats.InputFileSize = uint64(info.Size())
	}

	resized := ResizeToWidth(flatten(img))
	c.stats.ResizedHeight = resized.Bounds().Dy()

	if c.options.Verbose {
		fmt.Printf("Resized %dx%d input proportionally to %dx%d\n",
			c.stats.SourceWidth, c.stats.SourceHeight, ScreenWidth, c.stats.ResizedHeight)
	}

	for _, planned := range PlanLayout(c.stats.ResizedHeight) {
		if err := c.emit(resized, planned); err != nil {
			return err
		}
	}

	c.stats.ProcessingTime = time.Since(c.startTime)
	c.displayResults()

	return nil
}

// emit renders, quantizes and writes one planned output.
func (c *Converter) emit(resized image.Image, planned PlannedOutput) error {
	var out image.Image
	if planned.Variant.IsCrop() {
		out = CropWindow(resized, planned.Offset)
	} else {
		out = ForceResize(resized)
	}

	out = c.quantizer.Apply(out)

	path := c.outputPath(planned.Variant)
	if err := saveBMP(out, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if info, err := os.Stat(path); err == nil {
		c.stats.OutputFileSize += uint64(info.Size())
	}
	c.stats.OutputCount++

	if c.options.Verbose {
		if planned.Variant.IsCrop() {
			fmt.Printf("Saved %s (crop offset %d)\n", path, planned.Offset)
		} else {
			fmt.Printf("Saved %s (forced resize)\n", path)
		}
	}

	return nil
}

// outputPath maps a variant to its output filename.
func (c *Converter) outputPath(v Variant) string {
	return c.options.OutputBase + v.Suffix() + ".bmp"
}

// saveBMP writes the image as an uncompressed 24-bit BMP. The pixels
// are redrawn into an opaque RGBA buffer first; the BMP encoder only
// emits 24 bits per pixel for fully opaque images.
func saveBMP(img image.Image, path string) error {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	for i := 3; i < len(rgba.Pix); i += 4 {
		rgba.Pix[i] = 0xff
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := bmp.Encode(f, rgba); err != nil {
		return err
	}
	return f.Close()
}

// displayResults shows the conversion results.
func (c *Converter) displayResults() {
	fmt.Printf("\nConversion completed successfully\n")
	fmt.Printf("================================================================\n")
	fmt.Printf("Input:      %s (%s, %dx%d)\n",
		filepath.Base(c.options.InputPath), humanize.Bytes(c.stats.InputFileSize),
		c.stats.SourceWidth, c.stats.SourceHeight)
	fmt.Printf("Output:     %d files (%s total)\n",
		c.stats.OutputCount, humanize.Bytes(c.stats.OutputFileSize))
	fmt.Printf("Palette:    %d colors\n", c.stats.PaletteColors)
	fmt.Printf("Processing: %v\n", c.stats.ProcessingTime.Round(time.Millisecond))
	fmt.Printf("================================================================\n")
}

// GetStats returns the current conversion statistics.
func (c *Converter) GetStats() ConvertStats {
	return c.stats
}
