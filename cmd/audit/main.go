package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wordbook/api/internal/audit"
	"github.com/wordbook/api/internal/catalog"
	"github.com/wordbook/api/internal/client"
	"github.com/wordbook/api/internal/config"
	"github.com/wordbook/api/internal/database"
	"github.com/wordbook/api/internal/repository"
)

func main() {
	workers := flag.Int("workers", 10, "Number of parallel workers")
	batchSize := flag.Int("batch", catalog.MaxLimit, "Catalog page size")
	lookup := flag.Bool("lookup", false, "Also check every word against the dictionary API")
	outputFile := flag.String("output", "audit_results.json", "Output file for results")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("connect database", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	words := repository.NewWordRepository(db)
	opts := audit.Options{
		Workers:   *workers,
		BatchSize: *batchSize,
		Progress: func(processed, issues int64) {
			fmt.Printf("Progress: %d words, Issues found: %d\n", processed, issues)
		},
	}
	if *lookup {
		opts.Provider = client.NewDictionaryClient(cfg.DictionaryAPIURL, cfg.DictionaryTimeout)
	}

	fmt.Printf("Auditing catalog with %d workers...\n", *workers)

	report, err := audit.New(catalog.NewPaginator(words), opts).Run(ctx)
	if err != nil {
		logger.Error("audit failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\n=== Audit Complete ===\n")
	fmt.Printf("Total words: %d\n", report.Total)
	fmt.Printf("Issues found: %d (%.2f%%)\n", len(report.Issues), percentage(len(report.Issues), report.Total))
	fmt.Printf("Time elapsed: %v\n", report.Elapsed)

	fmt.Printf("\n=== Issues by Type ===\n")
	for typ, typeIssues := range report.IssuesByType {
		fmt.Printf("%s: %d\n", typ, len(typeIssues))
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Error("encode report", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputFile, jsonData, 0644); err != nil {
		logger.Error("write output file", "path", *outputFile, "error", err)
		os.Exit(1)
	}
	fmt.Printf("\nResults saved to %s\n", *outputFile)
}

func percentage(n int, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
