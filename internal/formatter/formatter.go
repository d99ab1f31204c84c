// package formatter renders per-file status lines, run summaries, and JSON run reports
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/lrcdl/internal/tasks"
)

var (
	downloadedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	failedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noMatchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// glyph returns the status marker for an outcome, styled when color is enabled.
func glyph(status tasks.Status, color bool) string {
	var mark string
	var style lipgloss.Style

	switch status {
	case tasks.StatusDownloaded:
		mark, style = "✓", downloadedStyle
	case tasks.StatusSkipped:
		mark, style = "⏭", skippedStyle
	case tasks.StatusFailed:
		mark, style = "✗", failedStyle
	case tasks.StatusNoMatch:
		mark, style = "∅", noMatchStyle
	default:
		mark = "?"
	}

	if color {
		return style.Render(mark)
	}
	return mark
}

// StatusLine renders one outcome as a single display line.
func StatusLine(o tasks.Outcome, color bool) string {
	name := filepath.Base(o.Path)

	switch o.Status {
	case tasks.StatusDownloaded:
		kind := "plain"
		if o.Synced {
			kind = "synced"
		}
		detail := fmt.Sprintf("%s, %s match", kind, o.Confidence)
		if o.DryRun {
			detail += ", dry-run"
		}
		return fmt.Sprintf("%s %s (%s)", glyph(o.Status, color), name, detail)
	case tasks.StatusSkipped:
		return fmt.Sprintf("%s %s (lyrics file exists)", glyph(o.Status, color), name)
	case tasks.StatusNoMatch:
		return fmt.Sprintf("%s %s (no lyrics found for %s)", glyph(o.Status, color), name, o.Identity)
	default:
		return fmt.Sprintf("%s %s (%s)", glyph(o.Status, color), name, o.Reason)
	}
}

// Summary renders the end-of-run statistics block.
func Summary(result *tasks.RunResult) string {
	var buf bytes.Buffer

	buf.WriteString("═══════════════════════════════════════\n")
	buf.WriteString("Sync Complete\n")
	buf.WriteString("═══════════════════════════════════════\n")
	buf.WriteString(fmt.Sprintf("Downloaded:        %d\n", result.Stats.Downloaded))
	buf.WriteString(fmt.Sprintf("Skipped (exists):  %d\n", result.Stats.Skipped))
	buf.WriteString(fmt.Sprintf("No match:          %d\n", result.Stats.NoMatch))
	buf.WriteString(fmt.Sprintf("Failed:            %d\n", result.Stats.Failed))
	buf.WriteString(fmt.Sprintf("Total processed:   %d\n", result.Stats.Total))
	buf.WriteString(fmt.Sprintf("Elapsed:           %s\n", result.Elapsed.Round(time.Millisecond)))

	return buf.String()
}

// ToJSON serializes a run result for machine consumption.
func ToJSON(result *tasks.RunResult, pretty bool) ([]byte, error) {
	var out []byte
	var err error

	if pretty {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = json.Marshal(result)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run result: %w", err)
	}

	return out, nil
}

// WriteJSONReport writes the run report to path, defaulting to
// lrcdl_report_{run id}.json in the working directory.
func WriteJSONReport(result *tasks.RunResult, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("lrcdl_report_%s.json", result.ID)
	}

	data, err := ToJSON(result, true)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}
