package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/layout"
	"github.com/yaklabco/quill/pkg/source"
)

// ErrNoPaginator is returned by Run when the Runner has no Paginator.
var ErrNoPaginator = errors.New("runner: nil paginator")

// Runner lays out files with a shared Paginator. The Paginator is read-only
// during a run, so workers share it.
type Runner struct {
	Paginator *layout.Paginator
}

// New creates a Runner.
func New(paginator *layout.Paginator) *Runner {
	return &Runner{Paginator: paginator}
}

// Run discovers files under opts.Paths and lays them out on a worker pool.
// Per-file read failures are recorded in the outcome, not returned. Files
// appear in the Result in discovery order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if r.Paginator == nil {
		return nil, ErrNoPaginator
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("laying out files",
		"files", len(files),
		"jobs", jobs,
	)

	workCh := make(chan int)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				outcomes[idx] = r.layoutFile(ctx, files[idx], opts)
				done[idx] = true
			}
		}()
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- idx:
		}
	}
	close(workCh)
	wg.Wait()

	for idx, outcome := range outcomes {
		if done[idx] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func (r *Runner) layoutFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	text, err := source.LoadFile(ctx, path, nil, opts.sourceFor(path))
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Book = r.Paginator.Book(text)
	outcome.Stats = r.Paginator.Stats(outcome.Book)
	return outcome
}
