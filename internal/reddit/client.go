package reddit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default client configuration.
const (
	DefaultBaseURL     = "https://www.reddit.com"
	DefaultTimeout     = 30 * time.Second
	DefaultSearchLimit = 10

	userAgent = "tariff-event-lab/1.0"
)

// Client fetches Reddit's public JSON endpoints. No authentication;
// only the unauthenticated .json views are used.
type Client struct {
	baseURL string
	client  *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithBaseURL overrides the Reddit base URL (used by tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a Reddit JSON client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchThread retrieves one submission with its comment tree by
// submission ID and parses it into posts.
func (c *Client) FetchThread(ctx context.Context, submissionID string) ([]Post, error) {
	data, err := c.get(ctx, fmt.Sprintf("%s/comments/%s.json", c.baseURL, submissionID))
	if err != nil {
		return nil, fmt.Errorf("fetch thread %s: %w", submissionID, err)
	}
	return ParseThread(data)
}

// Search runs one search term through Reddit search and parses the
// relevance-filtered hits.
func (c *Client) Search(ctx context.Context, term string) ([]Post, error) {
	q := url.Values{}
	q.Set("q", term)
	q.Set("sort", "relevance")
	q.Set("limit", fmt.Sprintf("%d", DefaultSearchLimit))

	data, err := c.get(ctx, fmt.Sprintf("%s/search.json?%s", c.baseURL, q.Encode()))
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	return ParseSearch(data, term)
}

// SubmissionIDFromURL extracts the submission ID from a full thread URL
// like https://www.reddit.com/r/Philippines/comments/<id>/<slug>/.
func SubmissionIDFromURL(threadURL string) (string, error) {
	parts := strings.Split(strings.Trim(threadURL, "/"), "/")
	for i, part := range parts {
		if part == "comments" && i+1 < len(parts) {
			return parts[i+1], nil
		}
	}
	return "", fmt.Errorf("no submission id in url %q", threadURL)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
