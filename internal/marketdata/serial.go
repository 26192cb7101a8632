package marketdata

import (
	"strconv"
	"time"

	"tariff-event-lab/internal/domain"
)

// Spreadsheet serial dates count days from the 1900-system epoch.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// serialToDate converts a spreadsheet serial day number to a calendar
// date. Fractional parts (intra-day time) are discarded.
func serialToDate(serial float64) time.Time {
	return serialEpoch.AddDate(0, 0, int(serial))
}

// parseDateCell normalizes a raw date cell to a calendar date.
// Accepts the numeric serial encoding the source spreadsheet uses,
// with ISO dates as a fallback for hand-edited exports.
// Returns ok=false for an empty (null) cell.
func parseDateCell(cell string) (time.Time, bool, error) {
	if isNullCell(cell) {
		return time.Time{}, false, nil
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		return serialToDate(serial), true, nil
	}

	t, err := time.Parse("2006-01-02", cell)
	if err != nil {
		return time.Time{}, false, err
	}
	return domain.Day(t), true, nil
}

// isNullCell reports whether a cell should be treated as null.
func isNullCell(cell string) bool {
	switch cell {
	case "", "NA", "N/A", "null", "#N/A":
		return true
	}
	return false
}
