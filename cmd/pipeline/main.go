// Package main provides the E2E study entry point.
// Executes: derived series → event comparisons → correlation → reporting.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tariff-event-lab/internal/config"
	"tariff-event-lab/internal/pipeline"
	"tariff-event-lab/internal/storage"
	"tariff-event-lab/internal/storage/clickhouse"
	"tariff-event-lab/internal/storage/memory"
	"tariff-event-lab/internal/storage/migrations"
	pgstore "tariff-event-lab/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	outputDir := flag.String("output-dir", "", "Output directory for generated files (overrides config)")
	useFixtures := flag.Bool("use-fixtures", false, "Run on in-memory fixture data instead of the databases")
	fixedClock := flag.String("fixed-clock", "", "RFC3339 timestamp for deterministic output")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	events, err := cfg.Events()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse events: %v\n", err)
		os.Exit(1)
	}

	var (
		barStore       storage.DailyBarStore
		sentimentStore storage.SentimentRecordStore
		returnStore    storage.ReturnTimeseriesStore
		maStore        storage.MovingAverageStore
		resultStore    storage.StudyResultStore
	)

	if *useFixtures {
		memBars := memory.NewDailyBarStore()
		memSentiment := memory.NewSentimentRecordStore()
		if err := pipeline.LoadFixtures(ctx, memBars, memSentiment); err != nil {
			fmt.Fprintf(os.Stderr, "Load fixtures: %v\n", err)
			os.Exit(1)
		}
		barStore = memBars
		sentimentStore = memSentiment
		returnStore = memory.NewReturnTimeseriesStore()
		maStore = memory.NewMovingAverageStore()
		resultStore = memory.NewStudyResultStore()
		fmt.Println("Running on fixture data (in-memory stores)")
	} else {
		if cfg.Storage.PostgresDSN == "" || cfg.Storage.ClickhouseDSN == "" {
			fmt.Fprintln(os.Stderr, "POSTGRES_DSN and CLICKHOUSE_DSN are required without --use-fixtures")
			os.Exit(1)
		}

		pool, err := pgstore.NewPool(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connect postgres: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Run postgres migrations: %v\n", err)
			os.Exit(1)
		}

		conn, err := migrations.RunClickhouseMigrations(ctx, cfg.Storage.ClickhouseDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Run clickhouse migrations: %v\n", err)
			os.Exit(1)
		}
		defer conn.Close()

		barStore = pgstore.NewDailyBarStore(pool)
		sentimentStore = pgstore.NewSentimentRecordStore(pool)
		resultStore = pgstore.NewStudyResultStore(pool)
		returnStore = clickhouse.NewReturnTimeseriesStore(conn)
		maStore = clickhouse.NewMovingAverageStore(conn)
	}

	runner := pipeline.NewStudyRunner(
		barStore, sentimentStore, returnStore, maStore, resultStore,
		events, cfg.Study.RadiusDays, cfg.Study.MAWindows, cfg.Output.Dir,
	)

	if *fixedClock != "" {
		at, err := time.Parse(time.RFC3339, *fixedClock)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad --fixed-clock: %v\n", err)
			os.Exit(1)
		}
		runner = runner.WithClock(func() time.Time { return at.UTC() })
	}

	if err := runner.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Study error: %v\n", err)
		os.Exit(1)
	}

	for ticker, skipErr := range runner.Skipped() {
		fmt.Printf("WARNING: %s skipped: %v\n", ticker, skipErr)
	}

	fmt.Printf("Study complete. Outputs written to %s/\n", cfg.Output.Dir)
	fmt.Println("  - TARIFF_STUDY.md")
	fmt.Println("  - volatility_comparison.csv")
	fmt.Println("  - moving_average_changes.csv")
	fmt.Println("  - correlation_results.csv")
	fmt.Println("  - significance_results.csv")
	fmt.Println("  - sentiment_daily.csv")
}
