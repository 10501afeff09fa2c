package converter

import (
	"image"

	"github.com/alde/inkframe/pkg/palette"
	"github.com/makeworld-the-better-one/dither/v2"
)

// Quantizer maps images onto a fixed palette using Floyd-Steinberg
// error diffusion. Output is deterministic: pixels are processed in
// row-major order with no serpentine traversal.
type Quantizer struct {
	ditherer *dither.Ditherer
}

// NewQuantizer creates a quantizer for the given palette.
func NewQuantizer(pal palette.Palette) *Quantizer {
	d := dither.NewDitherer(pal.Colors())
	d.Matrix = dither.FloydSteinberg

	return &Quantizer{ditherer: d}
}

// Apply returns a copy of the image with every pixel drawn from the
// quantizer's palette.
func (q *Quantizer) Apply(img image.Image) image.Image {
	return q.ditherer.Dither(img)
}
