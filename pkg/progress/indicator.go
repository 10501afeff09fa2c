// Package progress provides lightweight terminal progress reporting.
package progress

import (
	"fmt"
	"sync"
	"time"
)

// Tracker reports completion progress for a known number of jobs. It is
// safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	total     int
	completed int
	startTime time.Time
}

// NewTracker creates a tracker for the given number of jobs.
func NewTracker(total int) *Tracker {
	return &Tracker{
		total:     total,
		startTime: time.Now(),
	}
}

// Done records one completed job and redraws the progress line.
func (t *Tracker) Done(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed++

	elapsed := time.Since(t.startTime)
	percentage := float64(t.completed) / float64(t.total) * 100

	var eta time.Duration
	if t.completed > 0 {
		avg := elapsed / time.Duration(t.completed)
		eta = avg * time.Duration(t.total-t.completed)
	}

	desc := jobID
	if len(desc) > 30 {
		desc = desc[:27] + "..."
	}

	fmt.Printf("\033[2K\rProgress: %d/%d (%.1f%%) | ETA: %v | %s",
		t.completed, t.total, percentage, eta.Round(time.Second), desc)
}

// Finish completes the progress display.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Printf("\033[2K\rCompleted %d/%d jobs in %v\n",
		t.completed, t.total, time.Since(t.startTime).Round(time.Millisecond))
}

// Stats returns a snapshot of the tracker state.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.startTime)
	rate := 0.0
	if elapsed.Seconds() > 0 {
		rate = float64(t.completed) / elapsed.Seconds()
	}

	return Stats{
		Total:     t.total,
		Completed: t.completed,
		Elapsed:   elapsed,
		Rate:      rate,
	}
}

// Stats contains progress statistics.
type Stats struct {
	Total     int
	Completed int
	Elapsed   time.Duration
	Rate      float64 // jobs per second
}
