package domain

import "time"

// SentimentRecord is one scored Reddit text (post or comment).
// Scores are produced by an external analyzer; this repo only
// consumes them. Corresponds to sentiment_records table in Postgres.
type SentimentRecord struct {
	RecordID      string    // reddit item id, unique
	PostedAt      time.Time // full timestamp, UTC
	Date          time.Time // calendar date of PostedAt, UTC midnight
	Subreddit     string
	Title         string
	Body          string
	Author        string
	Score         int // reddit upvote score
	Relevance     int // keyword relevance score, see internal/reddit
	CombinedScore float64
	VaderCompound float64
}

// SentimentDailyAggregate is the per-date mean of sentiment scores
// across all records observed that day.
type SentimentDailyAggregate struct {
	Date        time.Time
	AvgCombined float64
	AvgVader    float64
	Count       int
}

// SentimentLabel classifies a combined score into the three buckets
// used by the corpus summary.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

// Combined-score boundaries for labeling.
const (
	positiveCutoff = 0.1
	negativeCutoff = -0.1
)

// ClassifySentiment maps a combined score to its label.
func ClassifySentiment(combined float64) SentimentLabel {
	switch {
	case combined >= positiveCutoff:
		return SentimentPositive
	case combined <= negativeCutoff:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
