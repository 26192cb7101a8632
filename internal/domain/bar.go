package domain

import "time"

// DailyBar represents one trading day of OHLC data for one company.
// Corresponds to daily_bars table in Postgres. Unique per (ticker, date).
type DailyBar struct {
	Ticker string    // PSE ticker symbol (JFC, URC, ...)
	Date   time.Time // calendar date, UTC midnight
	Open   float64
	High   float64
	Low    float64
	Close  float64
}
