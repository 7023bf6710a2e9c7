package processor

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Run validates the batch, converts every path on a worker pool and reports
// one ProgressUpdate per finished job on updates (which may be nil). Results
// are returned in completion order.
//
// Precondition failures are returned before any job is queued. Once the pool
// starts, Run never fails: per-item errors live in the results. Cancelling
// ctx lets in-flight jobs finish; queued jobs are reported as failures
// without being converted.
func Run(ctx context.Context, paths []string, outputDir string, opts Options, updates chan<- ProgressUpdate) (BatchRun, error) {
	if err := Validate(paths, outputDir, opts); err != nil {
		return BatchRun{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	jobs := NewJobs(paths, outputDir, opts)
	run := BatchRun{
		ID:        uuid.NewString(),
		OutputDir: outputDir,
		Total:     len(jobs),
		Results:   make([]Result, 0, len(jobs)),
		Started:   time.Now(),
	}

	queue := make(chan Job)
	results := make(chan Result)

	workers := poolSize(opts.Workers, len(jobs))
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			worker(ctx, queue, results)
		}()
	}

	go func() {
		defer close(queue)
		for _, job := range jobs {
			queue <- job
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		run.Completed++
		run.Results = append(run.Results, res)
		if updates != nil {
			updates <- ProgressUpdate{Completed: run.Completed, Total: run.Total, Result: res}
		}
	}

	run.Finished = time.Now()
	return run, nil
}

func worker(ctx context.Context, jobs <-chan Job, results chan<- Result) {
	for job := range jobs {
		if err := ctx.Err(); err != nil {
			results <- Result{
				InputPath: job.InputPath,
				Index:     job.Index,
				Err:       fmt.Errorf("not started: %w", err),
			}
			continue
		}
		results <- Transform(job)
	}
}

func poolSize(requested, jobs int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}
