package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/timefmt"
)

// IssueLabel renders "alias (KEY)" or just the key.
func IssueLabel(key, alias string) string {
	if alias == "" {
		return key
	}
	return fmt.Sprintf("%s (%s)", alias, key)
}

// FormatLogPreview describes a worklog about to be created.
func FormatLogPreview(p app.LogPreview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s on %s %s\n",
		Bold("Log"), Bold(timefmt.FormatDuration(p.Duration())),
		Bold(IssueLabel(p.Issue.Key, p.Alias)), Dim(p.Issue.Summary))
	fmt.Fprintf(&b, "  %s %s - %s",
		timefmt.FormatDateRelative(p.Day, p.Today), p.Start.Format("15:04"), p.End.Format("15:04"))
	if p.Logged > 0 {
		fmt.Fprintf(&b, "%s", Dim(fmt.Sprintf(", %s already logged", timefmt.FormatDuration(p.Logged))))
	}
	b.WriteString("\n")
	if p.Description != "" {
		fmt.Fprintf(&b, "  %s\n", Dim(p.Description))
	}
	return b.String()
}

// FormatLogged confirms a created worklog.
func FormatLogged(res app.LogResult) string {
	return fmt.Sprintf("Logged %s on %s.",
		timefmt.FormatDuration(res.Preview.Duration()), IssueLabel(res.Preview.Issue.Key, res.Preview.Alias))
}

// FormatCandidates lists issue suggestions, one per line.
func FormatCandidates(candidates []domain.Candidate) string {
	var b strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&b, "  %s  %s\n", c.Key, Dim(c.Hint))
	}
	return b.String()
}
