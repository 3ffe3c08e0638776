package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/semoutline/internal/logging"
	"github.com/yaklabco/semoutline/pkg/fsutil"
	"github.com/yaklabco/semoutline/pkg/langdetect"
	"github.com/yaklabco/semoutline/pkg/outline"
	"github.com/yaklabco/semoutline/pkg/outliner"
)

// Runner orchestrates multi-file outlining using an outliner.Outliner.
type Runner struct {
	// Outliner handles per-file processing.
	Outliner *outliner.Outliner
}

// New creates a new Runner with the given outliner.
func New(o *outliner.Outliner) *Runner {
	return &Runner{Outliner: o}
}

// Run discovers files under opts.Paths and outlines them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// A file that fails is recorded in its outcome and does not stop the run;
// only discovery errors and cancellation do.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

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

	logger.Debug("outlining files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	// Each worker owns one slot, so outcomes keep discovery order.
	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			outcomes[i] = r.process(groupCtx, path, opts)
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	return result, nil
}

// process outlines a single file and writes its document.
func (r *Runner) process(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	data, _, err := fsutil.ReadFile(ctx, path, r.Outliner.MaxFileSize())
	if err != nil {
		outcome.Error = err
		return outcome
	}

	if opts.SkipGenerated && langdetect.IsGenerated(path, data) {
		outcome.Skipped = true
		outcome.SkipReason = "generated"
		return outcome
	}

	file, err := r.Outliner.OutlineBytes(ctx, path, data, opts.Encoding)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Nodes = len(outline.Descendants(file))
	outcome.ParsingErrors = len(file.ParsingErrors)
	outcome.Diagnostics = file.ParsingErrors

	if opts.DryRun {
		return outcome
	}

	output := path + opts.effectiveSuffix()
	if err := r.Outliner.WriteFile(ctx, file, output); err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Output = output

	return outcome
}
