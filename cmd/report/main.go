// Package main prints the stored study result tables to the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"

	"tariff-event-lab/internal/config"
	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/sentiment"
	"tariff-event-lab/internal/storage/migrations"
	pgstore "tariff-event-lab/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (overrides config)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load config: %v\n", err)
		os.Exit(1)
	}
	if *postgresDSN != "" {
		cfg.Storage.PostgresDSN = *postgresDSN
	}
	if cfg.Storage.PostgresDSN == "" {
		fmt.Fprintln(os.Stderr, "PostgreSQL DSN is required: set --postgres-dsn or POSTGRES_DSN")
		os.Exit(1)
	}

	pool, err := pgstore.NewPool(ctx, cfg.Storage.PostgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connect postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Run migrations: %v\n", err)
		os.Exit(1)
	}

	store := pgstore.NewStudyResultStore(pool)

	correlations, err := store.GetCorrelations(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load correlation results: %v\n", err)
		os.Exit(1)
	}
	significance, err := store.GetSignificance(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load significance results: %v\n", err)
		os.Exit(1)
	}
	records, err := pgstore.NewSentimentRecordStore(pool).GetAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load sentiment records: %v\n", err)
		os.Exit(1)
	}

	printCorrelations(correlations)
	fmt.Println()
	printSignificance(significance)
	fmt.Println()
	printSentimentSummary(records)
}

func printCorrelations(results []*domain.CorrelationResult) {
	fmt.Printf("Returns vs sentiment correlation (%d rows):\n\n", len(results))

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Ticker", "Scope", "r (combined)", "r (VADER)", "p-value", "Sig", "Meaningful", "N"}),
	)
	for _, r := range results {
		table.Append([]string{
			r.Ticker,
			r.Scope,
			cell(r.ReturnsVsAvg, 4),
			cell(r.ReturnsVsVader, 4),
			cell(r.PValue, 4),
			yesNo(r.Significant),
			yesNo(r.Meaningful),
			fmt.Sprintf("%d", r.Observations),
		})
	}
	table.Render()
}

func printSignificance(results []*domain.SignificanceResult) {
	fmt.Printf("Mean return before/after events (%d rows):\n\n", len(results))

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Ticker", "Event", "Mean Before", "Mean After", "p-value", "Sig", "N Before", "N After"}),
	)
	for _, r := range results {
		table.Append([]string{
			r.Ticker,
			r.EventLabel,
			cell(r.MeanBefore, 6),
			cell(r.MeanAfter, 6),
			cell(r.PValue, 4),
			yesNo(r.Significant),
			fmt.Sprintf("%d", r.NBefore),
			fmt.Sprintf("%d", r.NAfter),
		})
	}
	table.Render()
}

func printSentimentSummary(records []*domain.SentimentRecord) {
	recordVals := make([]domain.SentimentRecord, len(records))
	for i, r := range records {
		recordVals[i] = *r
	}
	summary := sentiment.Summarize(recordVals)

	fmt.Printf("Sentiment corpus (%d records, avg combined %.4f):\n\n",
		summary.TotalRecords, summary.AvgCombined)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Label", "Count"}),
	)
	for _, label := range []domain.SentimentLabel{
		domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative,
	} {
		table.Append([]string{string(label), fmt.Sprintf("%d", summary.LabelCounts[label])})
	}
	table.Render()

	fmt.Println()
	subTable := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Subreddit", "Records", "Avg Combined"}),
	)
	for _, s := range summary.BySubreddit {
		subTable.Append([]string{
			s.Subreddit,
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.4f", s.AvgCombined),
		})
	}
	subTable.Render()
}

// cell renders an optional value; undefined results show as n/a.
func cell(v *float64, prec int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, *v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
