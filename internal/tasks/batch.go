package tasks

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/lrcdl/internal/shared"
)

// RunOpts contains configuration for a batch run.
type RunOpts struct {
	Force      bool
	DryRun     bool
	Extensions []string              // audio extensions to scan (default: .mp3)
	Progress   chan<- ProgressUpdate // optional; sends never block
}

// Run walks root, syncing every matching audio file sequentially.
//
// Per-file failures are recorded as outcomes and never abort the run. An
// error is returned only for setup-level failures: an unreadable root or a
// walk that cannot proceed. Context cancellation stops the run after the
// in-flight file, keeping partial statistics intact.
func (e *Engine) Run(ctx context.Context, root string, opts RunOpts) (*RunResult, error) {
	files, err := collectAudioFiles(root, opts.Extensions)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		ID:   shared.GenerateID(),
		Root: root,
	}

	logger := shared.WithLogger(e.logger, "run_id", result.ID)
	logger.Info("starting batch run", "root", root, "files", len(files), "force", opts.Force, "dry_run", opts.DryRun)

	e.sendProgress(opts.Progress, scanUpdate(len(files), root))

	start := time.Now()
	for i, path := range files {
		if ctx.Err() != nil {
			logger.Warn("run interrupted", "processed", i, "remaining", len(files)-i)
			break
		}

		e.sendProgress(opts.Progress, processingUpdate(i+1, len(files), path))

		outcome := e.SyncFile(ctx, path, FileOpts{Force: opts.Force, DryRun: opts.DryRun})
		result.Outcomes = append(result.Outcomes, outcome)
		result.Stats.record(outcome.Status)

		e.sendProgress(opts.Progress, outcomeUpdate(i+1, len(files), outcome))
	}
	result.Elapsed = time.Since(start)

	e.sendProgress(opts.Progress, doneUpdate(result))
	logger.Info("batch run complete",
		"downloaded", result.Stats.Downloaded,
		"skipped", result.Stats.Skipped,
		"failed", result.Stats.Failed,
		"no_match", result.Stats.NoMatch,
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// collectAudioFiles walks root and returns matching files in lexical order.
func collectAudioFiles(root string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{".mp3"}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk directory: %w", err)
		}
		if entry.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if slices.Contains(extensions, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	return files, nil
}
