package tasks

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lrcdl/internal/lrclib"
	"github.com/desertthunder/lrcdl/internal/match"
	"github.com/desertthunder/lrcdl/internal/metadata"
	"github.com/desertthunder/lrcdl/internal/shared"
	"golang.org/x/time/rate"
)

// Status is the terminal state of one file's sync.
type Status string

const (
	StatusDownloaded Status = "downloaded"
	StatusSkipped    Status = "skipped"
	StatusFailed     Status = "failed"
	StatusNoMatch    Status = "no_match"
)

// Outcome records the terminal state for one processed audio file.
type Outcome struct {
	Path       string            `json:"path"`
	Status     Status            `json:"status"`
	Identity   metadata.Identity `json:"identity,omitzero"`
	Confidence match.Confidence  `json:"confidence,omitempty"`
	Synced     bool              `json:"synced,omitempty"` // written lyrics carry timestamps
	DryRun     bool              `json:"dry_run,omitempty"`
	Reason     string            `json:"reason,omitempty"`
}

// Stats aggregates outcome counts for a run.
type Stats struct {
	Downloaded int `json:"downloaded"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	NoMatch    int `json:"no_match"`
	Total      int `json:"total"`
}

func (s *Stats) record(status Status) {
	s.Total++
	switch status {
	case StatusDownloaded:
		s.Downloaded++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	case StatusNoMatch:
		s.NoMatch++
	}
}

// RunResult contains everything from one batch run.
type RunResult struct {
	ID       string        `json:"run_id"`
	Root     string        `json:"root"`
	Outcomes []Outcome     `json:"outcomes"`
	Stats    Stats         `json:"stats"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Searcher defines the lyrics service query the engine depends on.
// This abstraction allows for easier testing and decoupling from the concrete lrclib client.
type Searcher interface {
	Search(ctx context.Context, artist, title string) ([]lrclib.Candidate, error)
}

// Resolver derives a track identity from an audio file path.
type Resolver interface {
	Resolve(path string) metadata.Identity
}

// Engine implements the per-file sync state machine and the batch driver.
type Engine struct {
	resolver Resolver
	searcher Searcher
	limiter  *rate.Limiter
	logger   *log.Logger
}

// EngineOpts contains configuration options for creating an Engine.
type EngineOpts struct {
	Resolver Resolver
	Searcher Searcher
	Interval time.Duration // minimum delay between service calls
	Logger   *log.Logger
}

// NewEngine creates an Engine with the provided dependencies.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Resolver == nil {
		opts.Resolver = metadata.NewResolver(opts.Logger)
	}
	if opts.Interval <= 0 {
		opts.Interval = 500 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Engine{
		resolver: opts.Resolver,
		searcher: opts.Searcher,
		limiter:  rate.NewLimiter(rate.Every(opts.Interval), 1),
		logger:   opts.Logger,
	}
}

// FileOpts controls a single SyncFile invocation.
type FileOpts struct {
	Force  bool // re-download even when a .lrc file exists
	DryRun bool // go through the full pipeline but skip the write
}

// SyncFile processes one audio file: skip check, resolve, query, select, write.
//
// Exactly one file write happens on the downloaded path; every other path
// leaves the filesystem untouched. Errors never propagate: each terminal
// state is reported as an [Outcome].
func (e *Engine) SyncFile(ctx context.Context, path string, opts FileOpts) Outcome {
	target := shared.LyricsPath(path)

	if !opts.Force && hasLyricsFile(target) {
		e.logger.Debug("lyrics file exists, skipping", "path", path)
		return Outcome{Path: path, Status: StatusSkipped, Reason: "lyrics file already exists"}
	}

	id := e.resolver.Resolve(path)
	e.logger.Debug("resolved identity", "path", path, "artist", id.Artist, "title", id.Title, "source", id.Source)

	// Pacing happens here rather than in the client so skipped files never
	// wait on the limiter.
	if err := e.limiter.Wait(ctx); err != nil {
		return Outcome{Path: path, Status: StatusFailed, Identity: id, Reason: fmt.Sprintf("cancelled: %v", err)}
	}

	candidates, err := e.searcher.Search(ctx, id.Artist, id.Title)
	if err != nil {
		e.logger.Debug("lookup failed", "path", path, "err", err)
		return Outcome{Path: path, Status: StatusFailed, Identity: id, Reason: err.Error()}
	}

	result := match.Select(id, candidates)
	if result.Confidence == match.None {
		return Outcome{Path: path, Status: StatusNoMatch, Identity: id, Reason: "no eligible candidate"}
	}

	outcome := Outcome{
		Path:       path,
		Status:     StatusDownloaded,
		Identity:   id,
		Confidence: result.Confidence,
		Synced:     result.Candidate.Synced != "",
	}

	if opts.DryRun {
		outcome.DryRun = true
		return outcome
	}

	if err := os.WriteFile(target, []byte(result.Candidate.Content()), 0644); err != nil {
		e.logger.Debug("write failed", "path", target, "err", err)
		return Outcome{
			Path:     path,
			Status:   StatusFailed,
			Identity: id,
			Reason:   fmt.Sprintf("%v: %v", shared.ErrWriteLyrics, err),
		}
	}

	return outcome
}

// hasLyricsFile reports whether a non-empty lyrics file exists at path.
// Empty files don't count as "already has lyrics".
func hasLyricsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
