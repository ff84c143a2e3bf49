package formatter

import (
	"strings"

	"github.com/alexanderramin/lt/internal/report"
	"github.com/charmbracelet/lipgloss"
)

// FormatStats renders a stats view below period.
func FormatStats(period string, view report.StatsView) string {
	var b strings.Builder
	b.WriteString(Bold("Period: "+period) + "\n\n")

	if len(view.Rows) == 0 {
		b.WriteString(Dim("No worklogs in this period.") + "\n")
		return b.String()
	}

	for _, row := range view.Rows {
		line := row.Duration + " " + row.Name
		if row.Sparkline != "" {
			line += " " + StyleSparkline.Render(row.Sparkline)
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
		for _, d := range row.Details {
			detail := "    " + d.Day + "  " + d.Duration
			if d.Comments != "" {
				detail += "  " + d.Comments
			}
			b.WriteString(Dim(strings.TrimRight(detail, " ")) + "\n")
		}
	}

	b.WriteString(Dim(strings.Repeat("-", lipgloss.Width(view.Total)+1+lipgloss.Width(view.TotalLabel))) + "\n")
	b.WriteString(Bold(view.Total+" "+strings.TrimRight(view.TotalLabel, " ")) + "\n")

	if view.Axis != "" {
		indent := strings.Repeat(" ", lipgloss.Width(view.Total)+1+lipgloss.Width(view.TotalLabel)+1)
		b.WriteString(Dim(indent+view.Axis) + "\n")
	}
	return b.String()
}
