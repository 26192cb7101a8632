package domain

import "time"

// Day truncates a timestamp to its calendar date (UTC midnight).
// All daily series in this repo are keyed by Day-normalized times so that
// map lookups and date equality joins behave.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateYMD builds a Day-normalized date from components.
func DateYMD(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
