// Package ui renders a live bubbletea view of a batch lyrics run.
//
// The [Model] consumes the same [tasks.ProgressUpdate] channel the plain CLI
// renderer uses, so the engine stays unaware of which frontend is attached.
// It shows a progress bar across the file count, a spinner with the file
// currently being processed, the most recent per-file outcomes, and running
// totals. The view quits when the run completes or on q / ctrl+c.
package ui
