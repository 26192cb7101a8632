package sentiment

import (
	"sort"

	"tariff-event-lab/internal/domain"
)

// SubredditStats aggregates the corpus per subreddit.
type SubredditStats struct {
	Subreddit   string
	Count       int
	AvgCombined float64
}

// Summary describes the scored corpus as a whole.
type Summary struct {
	TotalRecords   int
	AvgCombined    float64
	LabelCounts    map[domain.SentimentLabel]int
	BySubreddit    []SubredditStats // sorted by count DESC, name ASC
	TopByScore     []domain.SentimentRecord
	TopByRelevance []domain.SentimentRecord
}

// How many records the "top" sections keep.
const (
	topScoreCount     = 3
	topRelevanceCount = 5
)

// Summarize builds the corpus summary: label distribution, per-subreddit
// breakdown, and the most upvoted / most relevant records.
func Summarize(records []domain.SentimentRecord) Summary {
	s := Summary{
		TotalRecords: len(records),
		LabelCounts: map[domain.SentimentLabel]int{
			domain.SentimentPositive: 0,
			domain.SentimentNeutral:  0,
			domain.SentimentNegative: 0,
		},
	}
	if len(records) == 0 {
		return s
	}

	type acc struct {
		count    int
		combined float64
	}
	bySub := make(map[string]*acc)

	sum := 0.0
	for _, r := range records {
		sum += r.CombinedScore
		s.LabelCounts[domain.ClassifySentiment(r.CombinedScore)]++

		a, ok := bySub[r.Subreddit]
		if !ok {
			a = &acc{}
			bySub[r.Subreddit] = a
		}
		a.count++
		a.combined += r.CombinedScore
	}
	s.AvgCombined = sum / float64(len(records))

	for sub, a := range bySub {
		s.BySubreddit = append(s.BySubreddit, SubredditStats{
			Subreddit:   sub,
			Count:       a.count,
			AvgCombined: a.combined / float64(a.count),
		})
	}
	sort.Slice(s.BySubreddit, func(i, j int) bool {
		if s.BySubreddit[i].Count != s.BySubreddit[j].Count {
			return s.BySubreddit[i].Count > s.BySubreddit[j].Count
		}
		return s.BySubreddit[i].Subreddit < s.BySubreddit[j].Subreddit
	})

	s.TopByScore = topBy(records, topScoreCount, func(a, b domain.SentimentRecord) bool {
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.RecordID < b.RecordID
	})
	s.TopByRelevance = topBy(records, topRelevanceCount, func(a, b domain.SentimentRecord) bool {
		if a.Relevance != b.Relevance {
			return a.Relevance > b.Relevance
		}
		return a.RecordID < b.RecordID
	})

	return s
}

// topBy returns the first n records under the given ordering without
// mutating the input.
func topBy(records []domain.SentimentRecord, n int, less func(a, b domain.SentimentRecord) bool) []domain.SentimentRecord {
	sorted := make([]domain.SentimentRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
