package domain

import "time"

// Event is a named calendar event the study anchors windows on,
// e.g. a tariff announcement or escalation date.
type Event struct {
	Label string
	Date  time.Time
}

// Window is an inclusive date range. A zero Start or End means that
// side is unbounded, which is how the open-ended before/after halves
// of an event split are expressed.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the Day-normalized date d falls inside the window.
func (w Window) Contains(d time.Time) bool {
	if !w.Start.IsZero() && d.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && d.After(w.End) {
		return false
	}
	return true
}
