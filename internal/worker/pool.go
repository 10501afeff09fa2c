// Package worker runs independent conversion jobs on a small pool of
// goroutines. Each job is self-contained; the pool only fans work out
// and collects results.
package worker

import (
	"context"
	"runtime"
	"sync"

	"github.com/alde/inkframe/pkg/progress"
)

// Job is a unit of work to be processed.
type Job interface {
	Process(ctx context.Context) error
	ID() string
}

// Result contains the outcome of processing a job.
type Result struct {
	JobID string
	Error error
}

// Pool manages a pool of worker goroutines.
type Pool struct {
	workerCount int
	jobs        chan Job
	results     chan Result
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	tracker     *progress.Tracker
}

// NewPool creates a new worker pool. A non-positive count uses one
// worker per CPU.
func NewPool(workerCount int) *Pool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workerCount: workerCount,
		jobs:        make(chan Job, workerCount*2),
		results:     make(chan Result, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// NewPoolWithProgress creates a pool that reports completion progress
// for a known number of jobs.
func NewPoolWithProgress(workerCount, totalJobs int) *Pool {
	p := NewPool(workerCount)
	p.tracker = progress.NewTracker(totalJobs)
	return p
}

// Start begins processing jobs.
func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Stop closes the job queue, waits for in-flight jobs and closes the
// results channel.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
	p.cancel()

	if p.tracker != nil {
		p.tracker.Finish()
	}
}

// Submit adds a job to the processing queue.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	case <-p.ctx.Done():
		p.results <- Result{JobID: job.ID(), Error: p.ctx.Err()}
	}
}

// Results returns the results channel.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// WorkerCount returns the number of workers in the pool.
func (p *Pool) WorkerCount() int {
	return p.workerCount
}

// ProgressStats returns a snapshot of the pool's progress tracking.
// The second return value is false for pools created without progress.
func (p *Pool) ProgressStats() (progress.Stats, bool) {
	if p.tracker == nil {
		return progress.Stats{}, false
	}
	return p.tracker.Stats(), true
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job, ok := <-p.jobs:
			if !ok {
				return
			}

			err := job.Process(p.ctx)

			if p.tracker != nil {
				p.tracker.Done(job.ID())
			}

			p.results <- Result{JobID: job.ID(), Error: err}

		case <-p.ctx.Done():
			return
		}
	}
}
