// Package marketdata normalizes the wide-format price spreadsheet into
// per-company daily bar series. The source lays companies out as
// repeated five-column blocks (date, close, open, high, low), one
// block per company, with a fixed number of header rows; each
// company's date column may have independent gaps.
package marketdata

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tariff-event-lab/internal/domain"
)

// ErrLoad indicates the source cannot be parsed into the expected
// column blocks. Fatal: a malformed top-level schema aborts the run.
var ErrLoad = errors.New("malformed price table")

// Column offsets inside one company block.
const (
	columnsPerCompany = 5

	colDate  = 0
	colClose = 1
	colOpen  = 2
	colHigh  = 3
	colLow   = 4
)

// Schema describes how companies are laid out in the raw table.
type Schema struct {
	// Tickers in block order, left to right.
	Tickers []string
	// HeaderRows is the fixed header-skip offset.
	HeaderRows int
}

// Table is the normalized load result. Failures below the schema level
// are isolated per company: a bad cell poisons only that company's
// series and is reported in Failed, leaving other series intact.
type Table struct {
	Series  map[string][]domain.DailyBar
	Dropped map[string]int   // rows dropped per ticker for null date/close
	Failed  map[string]error // companies whose series could not be parsed
}

// Load parses raw rows into per-company bar series. Rows with a null
// date or null close are dropped from that company's series only.
// Series come out sorted by date ASC.
func Load(rows [][]string, schema Schema) (*Table, error) {
	if len(schema.Tickers) == 0 {
		return nil, fmt.Errorf("%w: no tickers configured", ErrLoad)
	}
	if len(rows) <= schema.HeaderRows {
		return nil, fmt.Errorf("%w: %d rows, need more than %d header rows",
			ErrLoad, len(rows), schema.HeaderRows)
	}

	wantCols := len(schema.Tickers) * columnsPerCompany
	data := rows[schema.HeaderRows:]
	for i, row := range data {
		if len(row) < wantCols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrLoad, schema.HeaderRows+i, len(row), wantCols)
		}
	}

	table := &Table{
		Series:  make(map[string][]domain.DailyBar, len(schema.Tickers)),
		Dropped: make(map[string]int, len(schema.Tickers)),
		Failed:  make(map[string]error),
	}

	for blockIdx, ticker := range schema.Tickers {
		series, dropped, err := loadCompany(data, ticker, blockIdx*columnsPerCompany)
		if err != nil {
			table.Failed[ticker] = err
			continue
		}
		table.Series[ticker] = series
		table.Dropped[ticker] = dropped
	}

	return table, nil
}

// loadCompany extracts one company's block from the data rows.
func loadCompany(data [][]string, ticker string, offset int) ([]domain.DailyBar, int, error) {
	var series []domain.DailyBar
	dropped := 0

	for i, row := range data {
		block := row[offset : offset+columnsPerCompany]

		date, ok, err := parseDateCell(block[colDate])
		if err != nil {
			return nil, 0, fmt.Errorf("%s row %d: bad date cell %q: %v", ticker, i, block[colDate], err)
		}
		if !ok || isNullCell(block[colClose]) {
			dropped++
			continue
		}

		closePx, err := parsePriceCell(block[colClose])
		if err != nil {
			return nil, 0, fmt.Errorf("%s row %d: bad close cell %q: %v", ticker, i, block[colClose], err)
		}

		bar := domain.DailyBar{
			Ticker: ticker,
			Date:   date,
			Close:  closePx,
		}
		// Open/high/low gaps fall back to the close so the bar stays
		// internally consistent; only date and close gates a row.
		if bar.Open, err = priceOrDefault(block[colOpen], closePx); err != nil {
			return nil, 0, fmt.Errorf("%s row %d: bad open cell %q: %v", ticker, i, block[colOpen], err)
		}
		if bar.High, err = priceOrDefault(block[colHigh], closePx); err != nil {
			return nil, 0, fmt.Errorf("%s row %d: bad high cell %q: %v", ticker, i, block[colHigh], err)
		}
		if bar.Low, err = priceOrDefault(block[colLow], closePx); err != nil {
			return nil, 0, fmt.Errorf("%s row %d: bad low cell %q: %v", ticker, i, block[colLow], err)
		}

		series = append(series, bar)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series, dropped, nil
}

// parsePriceCell parses a price cell exactly before converting to
// float64 for downstream math.
func parsePriceCell(cell string) (float64, error) {
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// priceOrDefault parses a price cell, substituting def for null cells.
func priceOrDefault(cell string, def float64) (float64, error) {
	if isNullCell(cell) {
		return def, nil
	}
	return parsePriceCell(cell)
}

// DateRange reports the min and max bar dates across all series.
// ok is false when the table holds no bars at all.
func (t *Table) DateRange() (start, end time.Time, ok bool) {
	for _, series := range t.Series {
		for _, b := range series {
			if !ok {
				start, end, ok = b.Date, b.Date, true
				continue
			}
			if b.Date.Before(start) {
				start = b.Date
			}
			if b.Date.After(end) {
				end = b.Date
			}
		}
	}
	return start, end, ok
}
