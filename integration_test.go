package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/alde/inkframe/pkg/converter"
	"golang.org/x/image/bmp"
)

func writePhoto(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x * y) % 256),
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create photo: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode photo: %v", err)
	}
}

func TestIntegrationFullPipeline(t *testing.T) {
	tempDir := t.TempDir()

	input := filepath.Join(tempDir, "photo.png")
	writePhoto(t, input, 1600, 1200)

	palettePath := filepath.Join(tempDir, "7-color.act")
	paletteData := []byte{
		0, 0, 0,
		255, 255, 255,
		0, 255, 0,
		0, 0, 255,
		255, 0, 0,
		255, 255, 0,
		255, 128, 0,
	}
	if err := os.WriteFile(palettePath, paletteData, 0644); err != nil {
		t.Fatalf("Failed to write palette: %v", err)
	}

	base := filepath.Join(tempDir, "frame")
	conv := converter.New(converter.Options{
		InputPath:   input,
		OutputBase:  base,
		PalettePath: palettePath,
		Verbose:     true,
	})

	if err := conv.Convert(); err != nil {
		t.Fatalf("Conversion failed: %v", err)
	}

	suffixes := []string{"_top", "_upper", "_lower", "_bottom", "_resized"}
	for _, suffix := range suffixes {
		path := base + suffix + ".bmp"

		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("Missing output %s: %v", path, err)
		}

		img, err := bmp.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("Failed to decode %s: %v", path, err)
		}

		b := img.Bounds()
		if b.Dx() != converter.ScreenWidth || b.Dy() != converter.ScreenHeight {
			t.Errorf("%s: expected %dx%d, got %dx%d",
				path, converter.ScreenWidth, converter.ScreenHeight, b.Dx(), b.Dy())
		}
	}

	stats := conv.GetStats()
	if stats.OutputCount != len(suffixes) {
		t.Errorf("Expected %d outputs, got %d", len(suffixes), stats.OutputCount)
	}
}

func TestIntegrationRepeatedRunsAreIdentical(t *testing.T) {
	tempDir := t.TempDir()

	input := filepath.Join(tempDir, "photo.png")
	writePhoto(t, input, 800, 300)

	palettePath := filepath.Join(tempDir, "bw.act")
	if err := os.WriteFile(palettePath, []byte{0, 0, 0, 255, 255, 255}, 0644); err != nil {
		t.Fatalf("Failed to write palette: %v", err)
	}

	run := func(base string) []byte {
		conv := converter.New(converter.Options{
			InputPath:   input,
			OutputBase:  base,
			PalettePath: palettePath,
		})
		if err := conv.Convert(); err != nil {
			t.Fatalf("Conversion failed: %v", err)
		}

		data, err := os.ReadFile(base + ".bmp")
		if err != nil {
			t.Fatalf("Failed to read output: %v", err)
		}
		return data
	}

	first := run(filepath.Join(tempDir, "a"))
	second := run(filepath.Join(tempDir, "b"))

	if len(first) != len(second) {
		t.Fatalf("Output sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Outputs differ at byte %d", i)
		}
	}
}
