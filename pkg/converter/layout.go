package converter

import (
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"
)

// Display geometry of the target e-paper panel.
const (
	ScreenWidth  = 800
	ScreenHeight = 480
)

// Variant identifies one output image of a conversion.
type Variant int

const (
	// VariantTop is the topmost 800x480 crop window.
	VariantTop Variant = iota
	// VariantUpper is the window one third of the way down the slack.
	VariantUpper
	// VariantLower is the window two thirds of the way down the slack.
	VariantLower
	// VariantBottom is the bottommost crop window.
	VariantBottom
	// VariantFull is the forced resize emitted alongside the crops.
	VariantFull
	// VariantOnly is the forced resize emitted when the image is too
	// short to crop. It carries no suffix.
	VariantOnly
)

// Suffix returns the filename suffix for the variant. Filenames are
// derived only here; the rest of the pipeline works with tagged
// variants.
func (v Variant) Suffix() string {
	switch v {
	case VariantTop:
		return "_top"
	case VariantUpper:
		return "_upper"
	case VariantLower:
		return "_lower"
	case VariantBottom:
		return "_bottom"
	case VariantFull:
		return "_resized"
	default:
		return ""
	}
}

// IsCrop reports whether the variant is produced by cropping rather
// than by a forced resize.
func (v Variant) IsCrop() bool {
	return v <= VariantBottom
}

// PlannedOutput is one scheduled output image: a crop window at a
// vertical offset, or a forced resize.
type PlannedOutput struct {
	Variant Variant
	Offset  int
}

// PlanLayout decides the outputs for a proportionally resized image of
// height h. Images at least as tall as the screen get sliding-window
// crops plus a forced resize; shorter images get a single forced
// resize.
func PlanLayout(h int) []PlannedOutput {
	if h < ScreenHeight {
		return []PlannedOutput{{Variant: VariantOnly}}
	}

	slack := h - ScreenHeight
	windows := []PlannedOutput{
		{Variant: VariantTop, Offset: 0},
		{Variant: VariantBottom, Offset: slack},
		{Variant: VariantUpper, Offset: int(math.Round(float64(slack) / 3))},
		{Variant: VariantLower, Offset: int(math.Round(float64(slack) * 2 / 3))},
	}

	// Deduplicate colliding windows. The extreme windows are listed
	// first so that on short slack the inner ones are the ones dropped,
	// keeping "top" and "bottom" names stable.
	seen := make(map[int]bool)
	var plan []PlannedOutput
	for _, w := range windows {
		if seen[w.Offset] {
			continue
		}
		seen[w.Offset] = true
		plan = append(plan, w)
	}

	// Emit crops in top-to-bottom order, then the forced resize.
	sort.Slice(plan, func(i, j int) bool { return plan[i].Offset < plan[j].Offset })
	return append(plan, PlannedOutput{Variant: VariantFull})
}

// ResizeToWidth scales the image proportionally to the screen width.
// The resulting height is round(h * 800 / w).
func ResizeToWidth(img image.Image) *image.NRGBA {
	return imaging.Resize(img, ScreenWidth, 0, imaging.Lanczos)
}

// ForceResize stretches or compresses each axis independently to the
// exact screen geometry, disregarding aspect ratio.
func ForceResize(img image.Image) *image.NRGBA {
	return imaging.Resize(img, ScreenWidth, ScreenHeight, imaging.Lanczos)
}

// CropWindow extracts the full-width 800x480 window starting at the
// given vertical offset.
func CropWindow(img image.Image, offset int) *image.NRGBA {
	return imaging.Crop(img, image.Rect(0, offset, ScreenWidth, offset+ScreenHeight))
}
