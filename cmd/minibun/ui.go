// # cmd/minibun/ui.go
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"minibun/internal/core/app"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

func renderSummary(report app.BuildReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("minibun build"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  entry:   %s\n", report.Entry))
	b.WriteString(fmt.Sprintf("  steps:   %s\n", strings.Join(report.Steps, " → ")))
	b.WriteString(fmt.Sprintf("  modules: %d loaded, %d kept\n", report.ModuleCount, report.KeptModules))

	if report.Bundled {
		b.WriteString(fmt.Sprintf("  output:  %s (%d bytes)\n", report.OutputPath, report.BundleBytes))
	}

	if len(report.Cycles) > 0 {
		b.WriteString(cycleStyle.Render(fmt.Sprintf("  cycles:  %s", strings.Join(report.Cycles, ", "))))
		b.WriteString("\n")
	} else {
		b.WriteString(successStyle.Render("  cycles:  none"))
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render(fmt.Sprintf("  done in %s (build %s)", report.Duration, report.BuildID)))
	b.WriteString("\n")

	return b.String()
}
