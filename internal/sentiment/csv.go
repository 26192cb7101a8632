package sentiment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tariff-event-lab/internal/domain"
)

// ErrParse indicates the detailed sentiment export could not be read.
var ErrParse = errors.New("unparseable sentiment export")

// Columns the detailed export must carry. Extra columns are ignored.
var requiredColumns = []string{
	"datetime", "subreddit", "title", "text", "score",
	"author", "url", "relevance_score", "combined_score", "vader_compound",
}

// ParseDetailedCSV reads the scored per-text export into records. The
// first row is the header; column order is free. Rows with a bad
// timestamp or score are rejected, the export is expected to be
// machine-written.
func ParseDetailedCSV(rows [][]string) ([]*domain.SentimentRecord, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("%w: empty input", ErrParse)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrParse, name)
		}
	}

	var records []*domain.SentimentRecord
	for i, row := range rows[1:] {
		rec, err := parseRecord(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrParse, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string, cols map[string]int) (*domain.SentimentRecord, error) {
	cell := func(name string) string {
		idx := cols[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	postedAt, err := time.Parse("2006-01-02 15:04:05", cell("datetime"))
	if err != nil {
		return nil, fmt.Errorf("bad datetime %q", cell("datetime"))
	}
	postedAt = postedAt.UTC()

	score, err := strconv.Atoi(cell("score"))
	if err != nil {
		return nil, fmt.Errorf("bad score %q", cell("score"))
	}
	relevance, err := strconv.Atoi(cell("relevance_score"))
	if err != nil {
		return nil, fmt.Errorf("bad relevance_score %q", cell("relevance_score"))
	}
	combined, err := strconv.ParseFloat(cell("combined_score"), 64)
	if err != nil {
		return nil, fmt.Errorf("bad combined_score %q", cell("combined_score"))
	}
	vader, err := strconv.ParseFloat(cell("vader_compound"), 64)
	if err != nil {
		return nil, fmt.Errorf("bad vader_compound %q", cell("vader_compound"))
	}

	url := cell("url")
	if url == "" {
		return nil, errors.New("missing url")
	}

	return &domain.SentimentRecord{
		RecordID:      url,
		PostedAt:      postedAt,
		Date:          domain.Day(postedAt),
		Subreddit:     cell("subreddit"),
		Title:         cell("title"),
		Body:          cell("text"),
		Author:        cell("author"),
		Score:         score,
		Relevance:     relevance,
		CombinedScore: combined,
		VaderCompound: vader,
	}, nil
}
