// Package summary renders a day's tracked time for the console.
package summary

import (
	"fmt"
	"time"

	"github.com/bnema/keytrack/internal/application"
	"github.com/charmbracelet/lipgloss"
)

// Render formats a day summary: the detailed entry listing followed by
// per-label totals in first-appearance order.
func Render(s application.Summary) (string, error) {
	return renderView(s, newStyles()), nil
}

func renderView(summary application.Summary, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Tracked time for %s", summary.Date)),
		s.header.Render(fmt.Sprintf("entries: %d", len(summary.Entries))),
	}

	if len(summary.Entries) == 0 {
		lines = append(lines, s.empty.Render("No sessions recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	labelWidth := maxLabelWidth(summary)
	for _, entry := range summary.Entries {
		lines = append(lines, entryLine(entry.Start, entry.End, entry.Label, entry.DurationSeconds, labelWidth, s))
	}

	totals := make([]string, 0, len(summary.Totals)+1)
	for _, total := range summary.Totals {
		totals = append(totals, totalLine(total, labelWidth, s))
	}
	totals = append(totals, s.grandTotal.Render(fmt.Sprintf("%-*s %s", labelWidth, "total", formatSeconds(summary.TotalSeconds()))))

	return lipgloss.JoinVertical(lipgloss.Left, lines...) +
		"\n\n" +
		lipgloss.JoinVertical(lipgloss.Left, totals...)
}

func entryLine(start, end time.Time, label string, seconds, labelWidth int, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.entryTime.Render(fmt.Sprintf("%s–%s", start.Format("15:04"), end.Format("15:04"))),
		"  ",
		s.entryLabel.Render(fmt.Sprintf("%-*s", labelWidth, label)),
		" ",
		s.duration.Render(formatSeconds(seconds)),
	)
}

func totalLine(total application.LabelTotal, labelWidth int, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.totalKey.Render(fmt.Sprintf("%-*s", labelWidth, total.Label)),
		" ",
		s.duration.Render(formatSeconds(total.Seconds)),
	)
}

func maxLabelWidth(summary application.Summary) int {
	width := len("total")
	for _, total := range summary.Totals {
		if len(total.Label) > width {
			width = len(total.Label)
		}
	}
	return width
}

func formatSeconds(seconds int) string {
	d := time.Duration(seconds) * time.Second
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh%02dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
