package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lrcdl/internal/formatter"
	"github.com/desertthunder/lrcdl/internal/lrclib"
	"github.com/desertthunder/lrcdl/internal/shared"
	"github.com/desertthunder/lrcdl/internal/tasks"
	"github.com/desertthunder/lrcdl/internal/ui"
	"github.com/urfave/cli/v3"
)

// Sync runs the batch lyrics download over a directory tree.
//
// Per-file failures are reported in the summary, not via the exit status:
// a completed run returns nil even when individual files failed.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	root := cmd.StringArg("directory")
	if root == "" {
		return fmt.Errorf("%w: directory", shared.ErrMissingArgument)
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", shared.ErrInvalidArgument, root)
	}

	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	config := r.reloadConfig(cmd)
	interval := config.Sync.RateLimitInterval()
	if ms := cmd.Int("rate"); ms > 0 {
		interval = time.Duration(ms) * time.Millisecond
	}

	opts := tasks.RunOpts{
		Force:      cmd.Bool("force"),
		DryRun:     cmd.Bool("dry-run"),
		Extensions: config.Sync.Extensions,
	}

	r.logger.Info("starting sync", "root", root, "force", opts.Force, "dry_run", opts.DryRun, "interval", interval)

	if cmd.Bool("tui") {
		return r.runSyncTUI(ctx, root, config, interval, opts, cmd.String("report"))
	}

	r.rebuild(config, interval, r.logger)
	return r.runSyncPlain(ctx, root, opts, cmd.Bool("json"), cmd.String("report"))
}

// rebuild swaps the runner's client and engine for the given settings.
func (r *Runner) rebuild(config *shared.Config, interval time.Duration, logger *log.Logger) {
	if config != r.config {
		r.client = lrclib.NewClient(
			config.Lrclib.BaseURL,
			config.Lrclib.UserAgent,
			&http.Client{Timeout: config.Lrclib.Timeout()},
		)
	}

	r.config = config
	r.logger = logger
	r.engine = tasks.NewEngine(tasks.EngineOpts{
		Searcher: r.client,
		Interval: interval,
		Logger:   logger,
	})
}

// runSyncPlain drives a run while printing per-file status lines, then the summary.
func (r *Runner) runSyncPlain(ctx context.Context, root string, opts tasks.RunOpts, useJSON bool, reportPath string) error {
	progress := make(chan tasks.ProgressUpdate, 50)
	opts.Progress = progress

	color := r.output == os.Stdout

	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if useJSON {
				continue
			}
			switch update.Phase {
			case tasks.Scan:
				r.writePlain("%s\n\n", update.Message)
			case tasks.FileDone:
				if update.Outcome != nil {
					r.writePlain("%s\n", formatter.StatusLine(*update.Outcome, color))
				}
			}
		}
	}()

	result, err := r.engine.Run(ctx, root, opts)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	if reportPath != "" {
		written, err := formatter.WriteJSONReport(result, reportPath)
		if err != nil {
			r.logger.Error("failed to write run report", "error", err)
		} else {
			r.logger.Info("run report written", "path", written)
		}
	}

	if useJSON {
		return r.writeJSON(result, true)
	}

	r.writePlain("\n%s", formatter.Summary(result))
	return nil
}

// runSyncTUI drives a run behind the live bubbletea progress view.
func (r *Runner) runSyncTUI(ctx context.Context, root string, config *shared.Config, interval time.Duration, opts tasks.RunOpts, reportPath string) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	logDir := config.Sync.LogDir
	if logDir == "" {
		logDir = "./tmp"
	}
	fileLogger, err := shared.NewFileLogger(filepath.Join(logDir, "lrcdl-tui.log"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}

	r.rebuild(config, interval, fileLogger)

	progress := make(chan tasks.ProgressUpdate, 50)
	opts.Progress = progress

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result *tasks.RunResult
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, runErr = r.engine.Run(runCtx, root, opts)
		close(progress)
	}()

	p := tea.NewProgram(ui.NewModel(progress))
	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return fmt.Errorf("error running TUI: %w", err)
	}

	// The view may have been quit mid-run; stop the engine and collect
	// whatever completed.
	cancel()
	<-done

	if runErr != nil {
		return runErr
	}

	if reportPath != "" {
		if written, err := formatter.WriteJSONReport(result, reportPath); err == nil {
			r.writePlain("Report written to %s\n", written)
		}
	}

	r.writePlain("\n%s", formatter.Summary(result))
	return nil
}
