package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/novelint/internal/logging"
	"github.com/yaklabco/novelint/pkg/lint"
)

// Runner lints many files through one pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a Runner around pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the files selected by opts and processes them on up to
// opts.Jobs workers. A failure on one file is recorded in its outcome and
// does not stop the run; only discovery errors and cancellation are
// returned. Outcomes are in path order whatever order workers finish in.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)

	// Each worker writes only its own slot.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err //nolint:wrapcheck // Reported once below.
			}

			fileCtx := logging.WithFields(groupCtx, logging.FieldPath, path)
			outcome := FileOutcome{Path: path}
			pr, err := r.Pipeline.ProcessFile(fileCtx, path, opts.Config, pipelineOpts)
			if err != nil {
				outcome.Error = err
				logging.FromContext(fileCtx).Debug("file failed", logging.FieldError, err)
			} else {
				outcome.Result = pr
			}

			outcomes[i] = outcome
			done[i] = true
			return nil
		})
	}

	// Workers only return cancellation, which ctx reports below.
	_ = group.Wait()

	for i := range outcomes {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	logging.FromContext(ctx).Debug("run finished",
		logging.FieldJobs, jobs,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}
