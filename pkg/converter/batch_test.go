package converter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConvertDir(t *testing.T) {
	tempDir := t.TempDir()
	writeTestPhoto(t, tempDir, "beach.png", 640, 480)
	writeTestPhoto(t, tempDir, "mountain.png", 1024, 768)
	palettePath := writeTestPalette(t, tempDir)

	// A non-image file must be ignored.
	if err := os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("not a photo"), 0644); err != nil {
		t.Fatalf("Failed to write stray file: %v", err)
	}

	err := ConvertDir(BatchOptions{
		Dir:         tempDir,
		PalettePath: palettePath,
		WorkerCount: 1,
	})
	if err != nil {
		t.Fatalf("ConvertDir failed: %v", err)
	}

	checkBMPSize(t, filepath.Join(tempDir, "1.bmp"))
	checkBMPSize(t, filepath.Join(tempDir, "2.bmp"))

	if _, err := os.Stat(filepath.Join(tempDir, "3.bmp")); !os.IsNotExist(err) {
		t.Error("Unexpected third output")
	}
}

func TestConvertDirSecondRunIsStable(t *testing.T) {
	tempDir := t.TempDir()
	writeTestPhoto(t, tempDir, "a.png", 640, 480)
	palettePath := writeTestPalette(t, tempDir)

	opts := BatchOptions{
		Dir:         tempDir,
		PalettePath: palettePath,
		WorkerCount: 1,
	}

	// The outputs land in the input directory; a second run must not
	// pick them up as fresh inputs and renumber everything.
	for run := 0; run < 2; run++ {
		if err := ConvertDir(opts); err != nil {
			t.Fatalf("ConvertDir run %d failed: %v", run+1, err)
		}
	}

	checkBMPSize(t, filepath.Join(tempDir, "1.bmp"))

	if _, err := os.Stat(filepath.Join(tempDir, "2.bmp")); !os.IsNotExist(err) {
		t.Error("Second run consumed the first run's output")
	}
}

func TestConvertDirEmpty(t *testing.T) {
	tempDir := t.TempDir()
	palettePath := writeTestPalette(t, tempDir)

	emptyDir := filepath.Join(tempDir, "photos")
	if err := os.Mkdir(emptyDir, 0755); err != nil {
		t.Fatalf("Failed to create empty dir: %v", err)
	}

	err := ConvertDir(BatchOptions{
		Dir:         emptyDir,
		PalettePath: palettePath,
		WorkerCount: 1,
	})
	if err == nil {
		t.Error("Expected error for directory without images")
	}
}

func TestConvertDirCorruptImage(t *testing.T) {
	tempDir := t.TempDir()
	palettePath := writeTestPalette(t, tempDir)

	if err := os.WriteFile(filepath.Join(tempDir, "broken.png"), []byte("garbage"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	err := ConvertDir(BatchOptions{
		Dir:         tempDir,
		PalettePath: palettePath,
		WorkerCount: 1,
	})
	if err == nil {
		t.Error("Expected error for corrupt image")
	}
}

func TestListPhotosSorted(t *testing.T) {
	tempDir := t.TempDir()
	writeTestPhoto(t, tempDir, "b.png", 16, 16)
	writeTestPhoto(t, tempDir, "a.png", 16, 16)
	writeTestPhoto(t, tempDir, "c.png", 16, 16)

	// BMP files are batch outputs, never inputs.
	if err := os.WriteFile(filepath.Join(tempDir, "1.bmp"), []byte{'B', 'M'}, 0644); err != nil {
		t.Fatalf("Failed to write stray BMP: %v", err)
	}

	inputs, err := listPhotos(tempDir)
	if err != nil {
		t.Fatalf("listPhotos failed: %v", err)
	}

	expected := []string{"a.png", "b.png", "c.png"}
	if len(inputs) != len(expected) {
		t.Fatalf("Expected %d inputs, got %d", len(expected), len(inputs))
	}
	for i, want := range expected {
		if filepath.Base(inputs[i]) != want {
			t.Errorf("Input %d: expected %s, got %s", i, want, filepath.Base(inputs[i]))
		}
	}
}
