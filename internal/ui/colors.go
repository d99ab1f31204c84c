package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/lrcdl/internal/tasks"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func statsLine(s tasks.Stats) string {
	return fmt.Sprintf("✓ %d  ⏭ %d  ∅ %d  ✗ %d", s.Downloaded, s.Skipped, s.NoMatch, s.Failed)
}
