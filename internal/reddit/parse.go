package reddit

import (
	"encoding/json"
	"fmt"
	"time"
)

// Comments nested deeper than this are ignored.
const maxCommentDepth = 4

// Wire structures for Reddit's public JSON listings.
type listing struct {
	Kind string      `json:"kind"`
	Data listingData `json:"data"`
}

type listingData struct {
	Children []thing `json:"children"`
}

type thing struct {
	Kind string    `json:"kind"`
	Data thingData `json:"data"`
}

type thingData struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Selftext    string          `json:"selftext"`
	Body        string          `json:"body"`
	Score       int             `json:"score"`
	NumComments int             `json:"num_comments"`
	CreatedUTC  float64         `json:"created_utc"`
	Author      string          `json:"author"`
	Subreddit   string          `json:"subreddit"`
	Permalink   string          `json:"permalink"`
	Replies     json.RawMessage `json:"replies"` // empty string or nested listing
}

// ParseThread parses a /comments/<id>.json payload: the submission
// itself plus its comment tree to maxCommentDepth, skipping deleted
// and removed bodies.
func ParseThread(data []byte) ([]Post, error) {
	var listings []listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("parse thread json: %w", err)
	}
	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return nil, fmt.Errorf("parse thread json: no submission in payload")
	}

	main := listings[0].Data.Children[0].Data
	posts := []Post{{
		Type:        TypePost,
		ID:          main.ID,
		Title:       main.Title,
		Body:        main.Selftext,
		Score:       main.Score,
		NumComments: main.NumComments,
		CreatedUTC:  time.Unix(int64(main.CreatedUTC), 0).UTC(),
		Author:      main.Author,
		Subreddit:   main.Subreddit,
		Permalink:   main.Permalink,
	}}

	if len(listings) > 1 {
		posts = append(posts, parseComments(listings[1].Data.Children, 0)...)
	}

	return posts, nil
}

// parseComments walks a comment listing recursively.
func parseComments(children []thing, depth int) []Post {
	if depth > maxCommentDepth {
		return nil
	}

	var posts []Post
	for _, child := range children {
		if child.Kind != "t1" {
			continue
		}
		c := child.Data
		if c.Body == deletedText || c.Body == removedText || c.Body == "" {
			continue
		}

		posts = append(posts, Post{
			Type:       TypeComment,
			ID:         c.ID,
			Body:       c.Body,
			Score:      c.Score,
			CreatedUTC: time.Unix(int64(c.CreatedUTC), 0).UTC(),
			Author:     c.Author,
			Subreddit:  c.Subreddit,
			Permalink:  c.Permalink,
			Depth:      depth,
		})

		posts = append(posts, parseReplies(c.Replies, depth+1)...)
	}

	return posts
}

// parseReplies unwraps the replies field, which Reddit encodes as
// either an empty string or a nested listing.
func parseReplies(raw json.RawMessage, depth int) []Post {
	if len(raw) == 0 {
		return nil
	}
	var nested listing
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil // empty-string replies field
	}
	return parseComments(nested.Data.Children, depth)
}

// ParseSearch parses a /search.json payload for one search term,
// keeping only hits that pass the relevance filter. Relevance scores
// are attached to the returned posts.
func ParseSearch(data []byte, term string) ([]Post, error) {
	var l listing
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse search json: %w", err)
	}

	var posts []Post
	for _, child := range l.Data.Children {
		d := child.Data
		text := d.Title + " " + d.Selftext
		if !RelevantSearchHit(text) {
			continue
		}

		posts = append(posts, Post{
			Type:        TypeSearch,
			ID:          d.ID,
			Title:       d.Title,
			Body:        d.Selftext,
			Score:       d.Score,
			NumComments: d.NumComments,
			CreatedUTC:  time.Unix(int64(d.CreatedUTC), 0).UTC(),
			Author:      d.Author,
			Subreddit:   d.Subreddit,
			Permalink:   d.Permalink,
			SearchTerm:  term,
			Relevance:   RelevanceScore(text),
		})
	}

	return posts, nil
}

// DedupeByPermalink drops posts whose permalink was already seen,
// keeping the first occurrence. The same thread surfaces through
// multiple search terms.
func DedupeByPermalink(posts []Post) []Post {
	seen := make(map[string]struct{}, len(posts))
	var result []Post
	for _, p := range posts {
		key := p.Permalink
		if key == "" {
			key = p.ID
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, p)
	}
	return result
}
