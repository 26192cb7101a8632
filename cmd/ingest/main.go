// Package main loads the raw study inputs into PostgreSQL:
// the wide per-company price export and the scored sentiment export.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tariff-event-lab/internal/config"
	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/marketdata"
	"tariff-event-lab/internal/sentiment"
	"tariff-event-lab/internal/storage/migrations"
	pgstore "tariff-event-lab/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	pricesPath := flag.String("prices", "", "Price CSV path (overrides config)")
	sentimentPath := flag.String("sentiment", "", "Sentiment CSV path (overrides config)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (overrides config)")
	flag.Parse()

	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}
	if *pricesPath != "" {
		cfg.Inputs.PricesCSV = *pricesPath
	}
	if *sentimentPath != "" {
		cfg.Inputs.SentimentCSV = *sentimentPath
	}
	if *postgresDSN != "" {
		cfg.Storage.PostgresDSN = *postgresDSN
	}
	if cfg.Storage.PostgresDSN == "" {
		logger.Fatal("PostgreSQL DSN is required: set --postgres-dsn or POSTGRES_DSN")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.Storage.PostgresDSN)
	if err != nil {
		logger.Fatalf("Connect postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		logger.Fatalf("Run migrations: %v", err)
	}

	if err := ingestPrices(ctx, pool, cfg, logger); err != nil {
		logger.Fatalf("Ingest prices: %v", err)
	}
	if err := ingestSentiment(ctx, pool, cfg, logger); err != nil {
		logger.Fatalf("Ingest sentiment: %v", err)
	}

	logger.Println("Ingest complete")
}

func ingestPrices(ctx context.Context, pool *pgstore.Pool, cfg *config.Config, logger *log.Logger) error {
	rows, err := readCSV(cfg.Inputs.PricesCSV)
	if err != nil {
		return err
	}

	table, err := marketdata.Load(rows, marketdata.Schema{
		Tickers:    cfg.Study.Tickers,
		HeaderRows: cfg.Inputs.HeaderRows,
	})
	if err != nil {
		return err
	}

	for ticker, loadErr := range table.Failed {
		logger.Printf("WARNING: %s series skipped: %v", ticker, loadErr)
	}
	for ticker, dropped := range table.Dropped {
		if dropped > 0 {
			logger.Printf("%s: dropped %d rows with null date/close", ticker, dropped)
		}
	}

	store := pgstore.NewDailyBarStore(pool)
	total := 0
	for _, ticker := range cfg.Study.Tickers {
		series, ok := table.Series[ticker]
		if !ok {
			continue
		}
		bars := make([]*domain.DailyBar, len(series))
		for i := range series {
			bars[i] = &series[i]
		}
		if err := store.InsertBulk(ctx, bars); err != nil {
			return fmt.Errorf("insert bars for %s: %w", ticker, err)
		}
		total += len(bars)
		logger.Printf("%s: %d bars", ticker, len(bars))
	}
	logger.Printf("Ingested %d bars total", total)
	return nil
}

func ingestSentiment(ctx context.Context, pool *pgstore.Pool, cfg *config.Config, logger *log.Logger) error {
	rows, err := readCSV(cfg.Inputs.SentimentCSV)
	if err != nil {
		return err
	}

	records, err := sentiment.ParseDetailedCSV(rows)
	if err != nil {
		return err
	}

	store := pgstore.NewSentimentRecordStore(pool)
	if err := store.InsertBulk(ctx, records); err != nil {
		return fmt.Errorf("insert sentiment records: %w", err)
	}
	logger.Printf("Ingested %d sentiment records", len(records))
	return nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}
