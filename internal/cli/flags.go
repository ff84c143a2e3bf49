package cli

import (
	"time"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/timefmt"
	"github.com/spf13/pflag"
)

// durationValue is a pflag.Value accepting "1h30m", "1.5", "90m" and the
// other forms timefmt.ParseDuration understands.
type durationValue struct {
	d   time.Duration
	set bool
}

var _ pflag.Value = (*durationValue)(nil)

func (v *durationValue) String() string {
	if !v.set {
		return ""
	}
	return timefmt.FormatDuration(v.d)
}

func (v *durationValue) Set(s string) error {
	d, err := timefmt.ParseDuration(s)
	if err != nil {
		return err
	}
	v.d, v.set = d, true
	return nil
}

func (v *durationValue) Type() string { return "duration" }

// timeValue is a pflag.Value for a time of day such as "9" or "9:30".
type timeValue struct {
	t *domain.TimeOfDay
}

var _ pflag.Value = (*timeValue)(nil)

func (v *timeValue) String() string {
	if v.t == nil {
		return ""
	}
	return v.t.String()
}

func (v *timeValue) Set(s string) error {
	t, err := timefmt.ParseTime(s)
	if err != nil {
		return err
	}
	v.t = &t
	return nil
}

func (v *timeValue) Type() string { return "time" }

// dateValue holds date text until today is known; dates like "yesterday"
// and "dd.mm" are relative to the invocation date.
type dateValue struct {
	text string
}

var _ pflag.Value = (*dateValue)(nil)

func (v *dateValue) String() string     { return v.text }
func (v *dateValue) Set(s string) error { v.text = s; return nil }
func (v *dateValue) Type() string       { return "date" }

// resolve returns the date, or fallback when the flag was not given.
func (v *dateValue) resolve(today, fallback domain.Date) (domain.Date, error) {
	if v.text == "" {
		return fallback, nil
	}
	return timefmt.ParseDate(v.text, today)
}
