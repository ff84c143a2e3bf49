package booking

import (
	"strings"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/timefmt"
)

// Entry is one issue:duration pair of a multi-entry log request.
type Entry struct {
	Raw      string
	Issue    string
	Duration time.Duration
	Err      error
}

// ParseEntries splits "opt:2h,proj:5h30m" into entries. Empty segments are
// skipped; a malformed segment is kept with Err set so the caller can
// report it and continue with the rest.
func ParseEntries(text string) []Entry {
	var entries []Entry
	for _, raw := range strings.Split(text, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		issue, dur, ok := strings.Cut(raw, ":")
		issue = strings.TrimSpace(issue)
		if !ok || issue == "" {
			entries = append(entries, Entry{Raw: raw, Err: &domain.ParseError{Kind: "entry", Input: raw, Reason: "expected issue:duration"}})
			continue
		}
		d, err := timefmt.ParseDuration(dur)
		if err != nil {
			entries = append(entries, Entry{Raw: raw, Issue: issue, Err: &domain.ParseError{Kind: "entry", Input: raw, Reason: err.Error()}})
			continue
		}
		entries = append(entries, Entry{Raw: raw, Issue: issue, Duration: d})
	}
	return entries
}
