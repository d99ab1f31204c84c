package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/lrcdl/internal/lrclib"
	"github.com/desertthunder/lrcdl/internal/match"
	"github.com/desertthunder/lrcdl/internal/shared"
	tu "github.com/desertthunder/lrcdl/internal/testing"
)

func newTestEngine(searcher Searcher) *Engine {
	return NewEngine(EngineOpts{
		Searcher: searcher,
		Interval: time.Millisecond,
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func syncedCandidates(artist, title string) []lrclib.Candidate {
	return []lrclib.Candidate{
		{Artist: artist, Title: title, Synced: "[00:01.00] first line\n[00:05.00] second line"},
	}
}

func TestSyncFile(t *testing.T) {
	t.Run("Downloads And Writes Synced Lyrics", func(t *testing.T) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "AJ Tracey - Ladbroke Grove.mp3")
		writeFile(t, audio, "audio")

		searcher := &tu.MockSearcher{Candidates: syncedCandidates("AJ Tracey", "Ladbroke Grove")}
		engine := newTestEngine(searcher)

		outcome := engine.SyncFile(context.Background(), audio, FileOpts{})

		if outcome.Status != StatusDownloaded {
			t.Fatalf("expected downloaded, got %s (%s)", outcome.Status, outcome.Reason)
		}
		if outcome.Confidence != match.Exact {
			t.Errorf("expected exact confidence, got %s", outcome.Confidence)
		}
		if !outcome.Synced {
			t.Error("expected synced lyrics")
		}

		content, err := os.ReadFile(filepath.Join(dir, "AJ Tracey - Ladbroke Grove.lrc"))
		if err != nil {
			t.Fatalf("expected lyrics file: %v", err)
		}
		if string(content) != searcher.Candidates[0].Synced {
			t.Errorf("lyrics not written verbatim: %q", content)
		}

		if searcher.LastArtist != "AJ Tracey" || searcher.LastTitle != "Ladbroke Grove" {
			t.Errorf("unexpected query: %s - %s", searcher.LastArtist, searcher.LastTitle)
		}
	})

	t.Run("Falls Back To Plain Lyrics", func(t *testing.T) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "Dave - Location.mp3")
		writeFile(t, audio, "audio")

		searcher := &tu.MockSearcher{Candidates: []lrclib.Candidate{
			{Artist: "Dave", Title: "Location", Plain: "plain lyric text"},
		}}
		engine := newTestEngine(searcher)

		outcome := engine.SyncFile(context.Background(), audio, FileOpts{})

		if outcome.Status != StatusDownloaded {
			t.Fatalf("expected downloaded, got %s", outcome.Status)
		}
		if outcome.Synced {
			t.Error("expected plain lyrics marker")
		}

		content, _ := os.ReadFile(filepath.Join(dir, "Dave - Location.lrc"))
		if string(content) != "plain lyric text" {
			t.Errorf("unexpected content: %q", content)
		}
	})

	t.Run("Skips Existing Without Network Call", func(t *testing.T) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "Dave - Location.mp3")
		writeFile(t, audio, "audio")
		writeFile(t, filepath.Join(dir, "Dave - Location.lrc"), "[00:01.00] existing")

		searcher := &tu.MockSearcher{}
		engine := newTestEngine(searcher)

		outcome := engine.SyncFile(context.Background(), audio, FileOpts{})

		if outcome.Status != StatusSkipped {
			t.Fatalf("expected skipped, got %s", outcome.Status)
		}
		if searcher.Calls() != 0 {
			t.Errorf("expected no network call, got %d", searcher.Calls())
		}
	})

	t.Run("Empty Existing File Does Not Skip", func(t *testing.T) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "Dave - Location.mp3")
		writeFile(t, audio, "audio")
		writeFile(t, filepath.Join(dir, "Dave - Location.lrc"), "")

		searcher := &tu.MockSearcher{Candidates: syncedCandidates("Dave", "Location")}
		engine := newTestEngine(searcher)

		outcome := engine.SyncFile(context.Background(), audio, FileOpts{})

		if outcome.Status != StatusDownloaded {
			t.Fatalf("expected downloaded, got %s", outcome.Status)
		}
	})

	t.Run("Idempotent Without Force", func(t *testing.T) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "Dave - Location.mp3")
		target := filepath.Join(dir, "Dave - Location.lrc")
		writeFile(t, audio, "audio")

		searcher := &tu.MockSearcher{Candidates: syncedCandidates("Dave", "Location")}
		engine := newTestEngine(searcher)

		first := engine.SyncFile(context.Background(), audio, FileOpts{})
		if first.Status != StatusDownloaded {
			t.Fatalf("expected downloaded, got %s", first.Status)
		}
		before, _ := os.ReadFile(target)

		second := engine.SyncFile(context.Background(), audio, FileOpts{})
		if second.Status != StatusSkipped {
			t.Fatalf("expected skipped on second run, got %s", second.Status)
		}

		after, _ := os.ReadFile(target)
		if string(before) != string(after) {
			t.Error("lyrics content changed on second run")
		}
		if searcher.Calls() != 1 {
			t.Errorf("expected exactly one service call, got %d", searcher.Calls())
		}
	})

	t.Run("Force Re-Runs Full Pipeline", func(t *testing.T) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "Dave - Location.mp3")
		target := filepath.Join(dir, "Dave - Location.lrc")
		writeFile(t, audio, "audio")
		writeFile(t, target, "stale lyrics")

		searcher := &tu.MockSearcher{Candidates: syncedCandidates("Dave", "Location")}
		engine := newTestEngine(searcher)

		outcome := engine.SyncFile(context.Background(), audio, FileOpts{Force: true})

		if outcome.Status != StatusDownloaded {
			t.Fatalf("expected downloaded, got %s", outcome.Status)
		}
		if searcher.Calls() != 1 {
			t.Errorf("expected a service call under force, got %d", searcher.Calls())
		}

		content, _ := os.ReadFile(target)
		if string(content) == "stale lyrics" {
			t.Error("expected existing file to be overwritten")
		}
	})

	t.Run("No Match Writes Nothing", func(t *testing.T) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "Dave - Location.mp3")
		writeFile(t, audio, "audio")

		engine := newTestEngine(&tu.MockSearcher{})

		outcome := engine.SyncFile(context.Background(), audio, FileOpts{})

		if outcome.Status != StatusNoMatch {
			t.Fatalf("expected no_match, got %s", outcome.Status)
		}
		if _, err := os.Stat(filepath.Join(dir, "Dave - Location.lrc")); !os.IsNotExist(err) {
			t.Error("expected no lyrics file")
		}
	})

	t.Run("Lookup Failure Writes Nothing", func(t *testing.T) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "Dave - Location.mp3")
		writeFile(t, audio, "audio")

		engine := newTestEngine(&tu.MockSearcher{Err: shared.ErrParseResponse})

		outcome := engine.SyncFile(context.Background(), audio, FileOpts{})

		if outcome.Status != StatusFailed {
			t.Fatalf("expected failed, got %s", outcome.Status)
		}
		if outcome.Reason == "" {
			t.Error("expected a failure reason")
		}
		if _, err := os.Stat(filepath.Join(dir, "Dave - Location.lrc")); !os.IsNotExist(err) {
			t.Error("expected no lyrics file")
		}
	})

	t.Run("Write Failure Is Surfaced", func(t *testing.T) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "Dave - Location.mp3")
		writeFile(t, audio, "audio")

		// A directory at the target path makes the write fail.
		if err := os.Mkdir(filepath.Join(dir, "Dave - Location.lrc"), 0755); err != nil {
			t.Fatal(err)
		}

		searcher := &tu.MockSearcher{Candidates: syncedCandidates("Dave", "Location")}
		engine := newTestEngine(searcher)

		outcome := engine.SyncFile(context.Background(), audio, FileOpts{Force: true})

		if outcome.Status != StatusFailed {
			t.Fatalf("expected failed, got %s", outcome.Status)
		}
	})

	t.Run("Dry Run Writes Nothing", func(t *testing.T) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "Dave - Location.mp3")
		writeFile(t, audio, "audio")

		searcher := &tu.MockSearcher{Candidates: syncedCandidates("Dave", "Location")}
		engine := newTestEngine(searcher)

		outcome := engine.SyncFile(context.Background(), audio, FileOpts{DryRun: true})

		if outcome.Status != StatusDownloaded || !outcome.DryRun {
			t.Fatalf("expected dry-run download, got %+v", outcome)
		}
		if _, err := os.Stat(filepath.Join(dir, "Dave - Location.lrc")); !os.IsNotExist(err) {
			t.Error("expected no lyrics file in dry-run mode")
		}
	})
}

func TestRun(t *testing.T) {
	t.Run("Batch Continues Past Failures", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "A - One.mp3"), "audio")
		writeFile(t, filepath.Join(dir, "B - Two.mp3"), "audio")
		writeFile(t, filepath.Join(dir, "B - Two.lrc"), "existing")
		writeFile(t, filepath.Join(dir, "C - Three.mp3"), "audio")
		writeFile(t, filepath.Join(dir, "notes.txt"), "not audio")

		calls := 0
		searcher := searcherFunc(func(ctx context.Context, artist, title string) ([]lrclib.Candidate, error) {
			calls++
			if artist == "C" {
				return nil, shared.ErrLookup
			}
			return syncedCandidates(artist, title), nil
		})

		engine := newTestEngine(searcher)
		result, err := engine.Run(context.Background(), dir, RunOpts{})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.ID == "" {
			t.Error("expected a run ID")
		}
		if result.Stats.Total != 3 {
			t.Errorf("expected 3 files processed, got %d", result.Stats.Total)
		}
		if result.Stats.Downloaded != 1 || result.Stats.Skipped != 1 || result.Stats.Failed != 1 {
			t.Errorf("unexpected stats: %+v", result.Stats)
		}
		if calls != 2 {
			t.Errorf("expected 2 service calls, got %d", calls)
		}
	})

	t.Run("Walks Subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "album")
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(sub, "A - Deep.mp3"), "audio")

		searcher := &tu.MockSearcher{Candidates: syncedCandidates("A", "Deep")}
		engine := newTestEngine(searcher)

		result, err := engine.Run(context.Background(), dir, RunOpts{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Stats.Downloaded != 1 {
			t.Errorf("expected nested file to be processed: %+v", result.Stats)
		}
	})

	t.Run("Reports Progress", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "A - One.mp3"), "audio")

		searcher := &tu.MockSearcher{Candidates: syncedCandidates("A", "One")}
		engine := newTestEngine(searcher)

		progress := make(chan ProgressUpdate, 16)
		_, err := engine.Run(context.Background(), dir, RunOpts{Progress: progress})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(progress)

		var phases []Phase
		var final *RunResult
		for update := range progress {
			phases = append(phases, update.Phase)
			if update.Phase == RunDone {
				final = update.Result
			}
		}

		if len(phases) < 3 {
			t.Fatalf("expected scan, process, and done updates, got %v", phases)
		}
		if phases[0] != Scan {
			t.Errorf("expected scan first, got %s", phases[0])
		}
		if final == nil || final.Stats.Downloaded != 1 {
			t.Errorf("expected final result in done update")
		}
	})

	t.Run("Invalid Root Is Fatal", func(t *testing.T) {
		engine := newTestEngine(&tu.MockSearcher{})

		if _, err := engine.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), RunOpts{}); err == nil {
			t.Error("expected an error for a missing root")
		}
	})

	t.Run("Cancellation Stops The Run", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "A - One.mp3"), "audio")
		writeFile(t, filepath.Join(dir, "B - Two.mp3"), "audio")

		ctx, cancel := context.WithCancel(context.Background())
		searcher := searcherFunc(func(_ context.Context, artist, title string) ([]lrclib.Candidate, error) {
			cancel()
			return syncedCandidates(artist, title), nil
		})

		engine := newTestEngine(searcher)
		result, err := engine.Run(ctx, dir, RunOpts{})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Stats.Total != 1 {
			t.Errorf("expected run to stop after in-flight file, got %d", result.Stats.Total)
		}
	})
}

// searcherFunc adapts a function to the Searcher interface.
type searcherFunc func(ctx context.Context, artist, title string) ([]lrclib.Candidate, error)

func (f searcherFunc) Search(ctx context.Context, artist, title string) ([]lrclib.Candidate, error) {
	return f(ctx, artist, title)
}

func TestStats(t *testing.T) {
	var s Stats
	for _, status := range []Status{StatusDownloaded, StatusDownloaded, StatusSkipped, StatusFailed, StatusNoMatch} {
		s.record(status)
	}

	if s.Total != 5 || s.Downloaded != 2 || s.Skipped != 1 || s.Failed != 1 || s.NoMatch != 1 {
		t.Errorf("unexpected stats: %+v", s)
	}
}

func TestCollectAudioFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.mp3"), "audio")
	writeFile(t, filepath.Join(dir, "a.MP3"), "audio")
	writeFile(t, filepath.Join(dir, "c.flac"), "audio")
	writeFile(t, filepath.Join(dir, "cover.jpg"), "image")

	t.Run("Default Extensions", func(t *testing.T) {
		files, err := collectAudioFiles(dir, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(files) != 2 {
			t.Fatalf("expected 2 files, got %v", files)
		}
		if filepath.Base(files[0]) != "a.MP3" {
			t.Errorf("expected lexical order with case-insensitive extension match, got %v", files)
		}
	})

	t.Run("Custom Extensions", func(t *testing.T) {
		files, err := collectAudioFiles(dir, []string{".mp3", ".flac"})
		if err != nil {
			t.Fatal(err)
		}
		if len(files) != 3 {
			t.Errorf("expected 3 files, got %v", files)
		}
	})
}
