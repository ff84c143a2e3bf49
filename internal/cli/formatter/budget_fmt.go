package formatter

import (
	"fmt"
	"io"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/timefmt"
)

const budgetBarWidth = 30

// WriteBudget writes an issue's estimate, used and remaining time, with
// the per-person split, as a table and a progress bar.
func WriteBudget(w io.Writer, b *app.Budget) error {
	title := b.Issue.Key
	if b.Alias != "" {
		title = fmt.Sprintf("%s (%s)", b.Alias, b.Issue.Key)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", Bold(title), Dim(b.Issue.Summary)); err != nil {
		return err
	}

	digits := len(fmt.Sprint(max(b.Estimate, b.Spent, b.Remaining) / (timefmt.WorkdayHours * 3600)))
	row := func(label string, seconds int64, share string) []string {
		return []string{label, timefmt.FormatDurationWorkdays(seconds, digits), hours(seconds), share}
	}

	rows := [][]string{row("Estimate", b.Estimate, "")}
	rows = append(rows, row("Used (total)", b.Spent, percent(b.Spent, b.Estimate)))
	for _, p := range b.People {
		rows = append(rows, row("  "+p.Name, p.Spent, percent(p.Spent, b.Spent)))
	}
	rows = append(rows, row("Remaining", b.Remaining, percent(b.Remaining, b.Estimate)))
	if b.Remaining > 0 {
		for _, p := range b.People {
			rows = append(rows, row("  "+p.Name, p.Remaining, percent(p.Remaining, b.Remaining)))
		}
	}
	if err := RenderTable(w, []string{"", "Time", "Hours", "Share"}, rows); err != nil {
		return err
	}

	if b.Estimate > 0 {
		_, err := fmt.Fprintf(w, "\n%s\n", RenderBudgetBar(float64(b.Spent)/float64(b.Estimate), budgetBarWidth))
		return err
	}
	_, err := fmt.Fprintln(w, "\n"+Dim("No estimate set."))
	return err
}

func hours(seconds int64) string {
	return fmt.Sprintf("%.1fh", float64(seconds)/3600)
}

func percent(part, whole int64) string {
	if whole <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", float64(part)*100/float64(whole))
}
