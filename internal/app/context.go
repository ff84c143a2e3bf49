package app

import (
	"time"

	"github.com/alexanderramin/lt/internal/domain"
)

// Defaults are the configured fallbacks for log.
type Defaults struct {
	Issue    string
	Start    *domain.TimeOfDay
	Duration time.Duration
	Message  string
}

// RunContext is built once per invocation and passed to every use case.
// It is never mutated after construction.
type RunContext struct {
	User     domain.User
	Instance string
	Today    domain.Date
	Now      time.Time
	Location *time.Location
	Aliases  domain.Aliases
	Verbose  int
	Defaults Defaults
}

// NewRunContext anchors a RunContext on now.
func NewRunContext(user domain.User, instance string, now time.Time, aliases domain.Aliases, verbose int, defaults Defaults) RunContext {
	if aliases == nil {
		aliases = domain.Aliases{}
	}
	return RunContext{
		User:     user,
		Instance: instance,
		Today:    domain.DateOf(now),
		Now:      now,
		Location: now.Location(),
		Aliases:  aliases,
		Verbose:  verbose,
		Defaults: defaults,
	}
}
