package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cminus/internal/diag"
	"cminus/internal/source"
)

// CheckFiles checks every path concurrently, each file with its own
// analysis context, table and Bag. Results come back in input order.
// Per-file failures are recorded in FileResult.Err (and as an IO
// diagnostic where one applies) without stopping the other files; the
// returned error is non-nil only when ctx is cancelled.
func CheckFiles(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSet()
	if len(paths) == 0 {
		return fileSet, nil, nil
	}

	inputs := make([]loaded, len(paths))
	for i, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		inputs[i] = load(fileSet, path)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index.
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, in := range inputs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := check(gctx, in, opts)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				res.Err = err
				if code, ok := failureCode(err); ok {
					diag.ReportError(diag.BagReporter{Bag: res.Bag}, code, 0, err.Error()).Emit()
				}
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
