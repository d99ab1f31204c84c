package tasks

import (
	"fmt"
	"path/filepath"
)

// ProgressUpdate represents a progress event during a batch run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase    // Operation phase
	Step    int      // Current file number within the run
	Total   int      // Total files in the run
	Message string   // Human-readable message for display
	Outcome *Outcome // Set on per-file completion events
	Result  *RunResult
}

// Operation phase enumeration
type Phase int

const (
	Scan Phase = iota
	Process
	FileDone
	RunDone
)

func (p Phase) String() string {
	switch p {
	case Scan:
		return "scan"
	case Process:
		return "process"
	case FileDone:
		return "file_done"
	case RunDone:
		return "run_done"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks the run.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full, skip this update
	}
}

func scanUpdate(total int, root string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Scan,
		Total:   total,
		Message: fmt.Sprintf("Found %d audio file(s) in %s", total, root),
	}
}

func processingUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Process,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, filepath.Base(path)),
	}
}

func outcomeUpdate(step, total int, outcome Outcome) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FileDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %s", step, total, filepath.Base(outcome.Path), outcome.Status),
		Outcome: &outcome,
	}
}

func doneUpdate(result *RunResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RunDone,
		Step:    result.Stats.Total,
		Total:   result.Stats.Total,
		Message: "Run complete",
		Result:  result,
	}
}
