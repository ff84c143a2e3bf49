package booking

import (
	"sort"
	"strings"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/pmezard/go-difflib/difflib"
)

const (
	fuzzyCutoff     = 0.6
	fuzzyMaxMatches = 5
)

// Target is an issue input after alias resolution.
type Target struct {
	Key   string
	Alias string
}

// ResolveTarget maps an alias to its issue key. When input already is a key
// that has an alias, the alias is returned alongside it.
func ResolveTarget(input string, aliases domain.Aliases) Target {
	if key, ok := aliases.Lookup(input); ok {
		return Target{Key: key, Alias: input}
	}
	key := input
	if domain.LooksLikeIssueKey(input) {
		key = strings.ToUpper(input)
	}
	alias, _ := aliases.AliasFor(key)
	return Target{Key: key, Alias: alias}
}

// Suggest returns issues the user may have meant by input: aliases whose
// names are similar to input, then cached issues whose summary contains
// input case-insensitively. Each key is suggested at most once.
func Suggest(input string, aliases domain.Aliases, issues []domain.Issue) []domain.Candidate {
	var candidates []domain.Candidate
	seen := make(map[string]bool)

	for _, name := range CloseMatches(input, aliases.Names(), fuzzyMaxMatches, fuzzyCutoff) {
		key := aliases[name]
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, domain.Candidate{Key: key, Hint: "alias for " + name})
	}

	needle := strings.ToLower(input)
	if needle == "" {
		return candidates
	}
	for _, issue := range issues {
		if seen[issue.Key] || !strings.Contains(strings.ToLower(issue.Summary), needle) {
			continue
		}
		seen[issue.Key] = true
		candidates = append(candidates, domain.Candidate{Key: issue.Key, Hint: issue.Summary})
	}
	return candidates
}

// CloseMatches returns up to n of possibilities whose similarity ratio to
// word is at least cutoff, best first.
func CloseMatches(word string, possibilities []string, n int, cutoff float64) []string {
	type scored struct {
		text  string
		ratio float64
	}
	target := strings.Split(word, "")
	var matches []scored
	for _, p := range possibilities {
		m := difflib.NewMatcher(strings.Split(p, ""), target)
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if r := m.Ratio(); r >= cutoff {
			matches = append(matches, scored{text: p, ratio: r})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].ratio != matches[j].ratio {
			return matches[i].ratio > matches[j].ratio
		}
		return matches[i].text > matches[j].text
	})
	if len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.text
	}
	return out
}
