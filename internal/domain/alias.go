package domain

import "sort"

// Aliases maps a short user-defined name to an issue key.
type Aliases map[string]string

// Lookup returns the issue key for alias.
func (a Aliases) Lookup(alias string) (string, bool) {
	key, ok := a[alias]
	return key, ok
}

// AliasFor returns the first alias (in name order) that maps to issueKey.
func (a Aliases) AliasFor(issueKey string) (string, bool) {
	for _, name := range a.Names() {
		if a[name] == issueKey {
			return name, true
		}
	}
	return "", false
}

// DisplayName returns the alias for issueKey when one exists, otherwise the key.
func (a Aliases) DisplayName(issueKey string) string {
	if alias, ok := a.AliasFor(issueKey); ok {
		return alias
	}
	return issueKey
}

// Names returns the alias names sorted alphabetically.
func (a Aliases) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
