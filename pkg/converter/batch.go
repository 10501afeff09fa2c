package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alde/inkframe/internal/worker"
	"github.com/alde/inkframe/pkg/palette"
)

// BatchOptions contains settings for converting a whole directory.
type BatchOptions struct {
	Dir         string
	PalettePath string
	WorkerCount int
	Verbose     bool
}

// batchJob converts one photo straight to the display geometry and
// writes it as a numbered BMP.
type batchJob struct {
	inputPath  string
	outputPath string
	quantizer  *Quantizer
}

// ID identifies the job in progress output.
func (j *batchJob) ID() string {
	return filepath.Base(j.inputPath)
}

// Process decodes, resizes, dithers and writes one photo.
func (j *batchJob) Process(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := DecodeImage(j.inputPath)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", j.inputPath, err)
	}

	out := j.quantizer.Apply(ForceResize(flatten(img)))

	if err := saveBMP(out, j.outputPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", j.outputPath, err)
	}

	return nil
}

// ConvertDir converts every supported photo in a directory, numbering
// the outputs 1.bmp, 2.bmp, ... in sorted filename order. The first
// failure aborts the run after in-flight jobs finish.
func ConvertDir(opts BatchOptions) error {
	pal, err := palette.LoadACT(opts.PalettePath)
	if err != nil {
		return fmt.Errorf("palette load failed: %w", err)
	}

	inputs, err := listPhotos(opts.Dir)
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no supported images found in %s", opts.Dir)
	}

	pool := worker.NewPoolWithProgress(opts.WorkerCount, len(inputs))
	pool.Start()

	if opts.Verbose {
		fmt.Printf("Converting %d images with %d workers\n", len(inputs), pool.WorkerCount())
	}

	go func() {
		for i, input := range inputs {
			pool.Submit(&batchJob{
				inputPath:  input,
				outputPath: filepath.Join(opts.Dir, fmt.Sprintf("%d.bmp", i+1)),
				quantizer:  NewQuantizer(pal),
			})
		}
		pool.Stop()
	}()

	// Drain all results so the pool can shut down cleanly; report the
	// first failure.
	var firstErr error
	for result := range pool.Results() {
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("conversion of %s failed: %w", result.JobID, result.Error)
		}
	}
	if firstErr != nil {
		return firstErr
	}

	if opts.Verbose {
		if stats, ok := pool.ProgressStats(); ok {
			fmt.Printf("Converted %d images in %v (%.1f images/sec)\n",
				stats.Completed, stats.Elapsed.Round(time.Millisecond), stats.Rate)
		}
	}

	return nil
}

// batchInputExts lists the photo formats batch mode consumes. BMP is
// deliberately absent: it is the output format, written into the same
// directory, and must never be picked up as an input on a later run.
var batchInputExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// listPhotos returns the batch input files in a directory, sorted by
// filename for deterministic output numbering.
func listPhotos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if batchInputExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			inputs = append(inputs, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(inputs)
	return inputs, nil
}
