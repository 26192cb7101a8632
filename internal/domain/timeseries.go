package domain

import "time"

// ReturnPoint represents one day of a company's log-return series.
// Corresponds to return_timeseries table in ClickHouse.
// LogReturn is nil for the first observation of a series, where no
// previous close exists. A nil value is "undefined", never zero.
type ReturnPoint struct {
	Ticker    string
	Date      time.Time
	LogReturn *float64
}

// MovingAveragePoint represents a trailing simple moving average value.
// Corresponds to moving_average_timeseries table in ClickHouse.
// Value is nil until WindowDays observations exist at this date.
type MovingAveragePoint struct {
	Ticker     string
	Date       time.Time
	WindowDays int
	Value      *float64
}

// Supported moving average windows (in trading observations).
const (
	MAWindowShort = 7
	MAWindowLong  = 30
)
