// Package main collects the Reddit discussion corpus: it searches for
// the study keywords, optionally walks specific comment threads, and
// writes the relevant posts to a CSV for the external sentiment
// analyzer.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"tariff-event-lab/internal/reddit"
)

const defaultSearchTerms = "Philippines tariff,Philippine stocks tariff,Jollibee tariff,PSEI tariff"

func main() {
	terms := flag.String("terms", defaultSearchTerms, "Comma-separated search terms")
	threads := flag.String("threads", "", "Comma-separated thread URLs to walk in full")
	outPath := flag.String("out", "data/reddit_posts.csv", "Output CSV path")
	pause := flag.Duration("pause", 2*time.Second, "Pause between requests")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := reddit.NewClient()

	var collected []reddit.Post
	for _, term := range splitList(*terms) {
		posts, err := client.Search(ctx, term)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search %q: %v\n", term, err)
			os.Exit(1)
		}
		fmt.Printf("Search %q: %d relevant hits\n", term, len(posts))
		collected = append(collected, posts...)
		sleep(ctx, *pause)
	}

	for _, threadURL := range splitList(*threads) {
		id, err := reddit.SubmissionIDFromURL(threadURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Thread %q: %v\n", threadURL, err)
			os.Exit(1)
		}
		posts, err := client.FetchThread(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fetch thread %s: %v\n", id, err)
			os.Exit(1)
		}
		fmt.Printf("Thread %s: %d posts\n", id, len(posts))
		collected = append(collected, posts...)
		sleep(ctx, *pause)
	}

	collected = reddit.DedupeByPermalink(collected)
	fmt.Printf("Collected %d unique posts\n", len(collected))

	if err := writeCSV(*outPath, collected); err != nil {
		fmt.Fprintf(os.Stderr, "Write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func writeCSV(path string, posts []reddit.Post) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"type", "id", "title", "text", "score", "num_comments",
		"datetime", "author", "subreddit", "url", "depth",
		"search_term", "relevance_score",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range posts {
		row := []string{
			p.Type,
			p.ID,
			p.Title,
			p.Body,
			strconv.Itoa(p.Score),
			strconv.Itoa(p.NumComments),
			p.CreatedUTC.UTC().Format("2006-01-02 15:04:05"),
			p.Author,
			p.Subreddit,
			p.Permalink,
			strconv.Itoa(p.Depth),
			p.SearchTerm,
			strconv.Itoa(p.Relevance),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
