package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is an hour and minute within one calendar day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// On returns the instant of tod on day d in loc.
func (tod TimeOfDay) On(d Date, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, tod.Hour, tod.Minute, 0, 0, loc)
}

func (tod TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", tod.Hour, tod.Minute)
}
