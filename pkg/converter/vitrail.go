package converter

import (
	"image"
	"image/color"

	"github.com/alde/inkframe/pkg/palette"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// edgeThreshold selects which Sobel gradient magnitudes count as a
// region boundary.
const edgeThreshold = 96

// VitrailOptions controls the stained-glass rendering.
type VitrailOptions struct {
	// Smooth is the Gaussian blur radius applied to the color regions
	// before edge tracing. Zero disables smoothing.
	Smooth float64
	// MaxColors caps the palette to its first N entries. Zero uses the
	// whole palette.
	MaxColors int
}

// Vitrail renders the image as stained glass: every pixel is remapped
// to its nearest palette color without dithering, and the boundaries
// between the flat color regions are traced in black.
func Vitrail(img image.Image, pal palette.Palette, opts VitrailOptions) *image.RGBA {
	colors := pal.Colors()
	if opts.MaxColors > 0 && opts.MaxColors < len(colors) {
		colors = colors[:opts.MaxColors]
	}

	// Smoothing happens before the remap so the output stays within the
	// palette and noisy areas collapse into larger glass panes.
	var work image.Image = flatten(img)
	if opts.Smooth > 0 {
		work = blur.Gaussian(work, opts.Smooth)
	}

	out := remapToPalette(work, colors)

	edges := segment.Threshold(effect.Sobel(out), edgeThreshold)
	paintEdges(out, edges)

	return out
}

// remapToPalette replaces each pixel with its nearest palette color.
func remapToPalette(img image.Image, colors color.Palette) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x-b.Min.X, y-b.Min.Y, colors.Convert(img.At(x, y)))
		}
	}

	return out
}

// paintEdges blacks out every pixel marked as an edge in the mask.
func paintEdges(img *image.RGBA, mask *image.Gray) {
	b := img.Bounds()
	black := color.RGBA{A: 255}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.GrayAt(x, y).Y > 0 {
				img.SetRGBA(x, y, black)
			}
		}
	}
}
