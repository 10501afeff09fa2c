package converter

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// supportedInputExts lists the input formats the pipeline can decode.
var supportedInputExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsSupportedInput reports whether the (lowercase) file extension names
// a decodable input format.
func IsSupportedInput(ext string) bool {
	return supportedInputExts[ext]
}

// DecodeImage loads an input photo from disk.
func DecodeImage(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return decodeWebP(path)
	}
	return imaging.Open(path)
}

func decodeWebP(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := webp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("webp decode failed: %w", err)
	}
	return img, nil
}

// flatten composites the image onto a white background, discarding any
// alpha channel so every downstream stage works on opaque RGB.
func flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	background := imaging.New(b.Dx(), b.Dy(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return imaging.Overlay(background, img, image.Pt(0, 0), 1.0)
}
