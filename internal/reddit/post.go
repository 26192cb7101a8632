// Package reddit collects the tariff discussion corpus: it parses
// Reddit's public JSON for comment threads and search results, scores
// each item's relevance to the study keywords, and filters out noise.
// Sentiment scoring is not done here; collected posts are handed to an
// external analyzer whose output comes back as sentiment records.
package reddit

import "time"

// Item kinds.
const (
	TypePost    = "post"
	TypeComment = "comment"
	TypeSearch  = "search_result"
)

// Placeholder bodies Reddit substitutes for removed content.
const (
	deletedText = "[deleted]"
	removedText = "[removed]"
)

// Post is one collected Reddit item (submission, comment, or search hit).
type Post struct {
	Type        string
	ID          string
	Title       string
	Body        string
	Score       int
	NumComments int
	CreatedUTC  time.Time
	Author      string
	Subreddit   string
	Permalink   string
	Depth       int // comment nesting level, 0 for submissions
	SearchTerm  string
	Relevance   int
}

// FullText joins title and body the way the downstream analyzer
// consumes an item.
func (p Post) FullText() string {
	if p.Title == "" {
		return p.Body
	}
	if p.Body == "" {
		return p.Title
	}
	return p.Title + " " + p.Body
}
