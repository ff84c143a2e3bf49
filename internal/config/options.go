// Package config reads and writes the layered dotenv configuration: the
// process environment, the nearest local .lt file and the system .lt file
// in the application directory, in that order of precedence.
package config

import (
	"fmt"
	"strings"
)

// Option is a configuration key.
type Option string

const (
	JiraInstance       Option = "JIRA_INSTANCE"
	JiraUser           Option = "JIRA_USER"
	LogIssue           Option = "LT_LOG_ISSUE"
	LogStart           Option = "LT_LOG_START"
	LogMessage         Option = "LT_LOG_MESSAGE"
	LogDuration        Option = "LT_LOG_DURATION"
	RangeAbbreviations Option = "LT_RANGE_ABBREVIATIONS"
)

// Options lists every valid option in display order.
var Options = []Option{
	JiraInstance,
	JiraUser,
	LogIssue,
	LogStart,
	LogMessage,
	LogDuration,
	RangeAbbreviations,
}

// Environment variables that are read but never stored in config files.
const (
	EnvToken = "JIRA_API_TOKEN"
	EnvHome  = "LT_HOME"
	EnvDB    = "LT_DB"
)

// InvalidOptionError reports an unknown configuration key.
type InvalidOptionError struct {
	Input string
}

func (e *InvalidOptionError) Error() string {
	valid := make([]string, len(Options))
	for i, o := range Options {
		valid[i] = "'" + string(o) + "'"
	}
	return fmt.Sprintf("'%s' is not a valid configuration option. Valid options are: %s",
		e.Input, strings.Join(valid, ", "))
}

// ParseOption matches s case-insensitively against Options.
func ParseOption(s string) (Option, error) {
	upper := Option(strings.ToUpper(strings.TrimSpace(s)))
	for _, o := range Options {
		if o == upper {
			return o, nil
		}
	}
	return "", &InvalidOptionError{Input: s}
}

// CompleteOptions returns the options starting with prefix, case-insensitively.
func CompleteOptions(prefix string) []string {
	prefix = strings.ToUpper(prefix)
	var out []string
	for _, o := range Options {
		if strings.HasPrefix(string(o), prefix) {
			out = append(out, string(o))
		}
	}
	return out
}
