package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/wordbook/api/internal/config"
	"github.com/wordbook/api/internal/database"
	"github.com/wordbook/api/internal/repository"
	"github.com/wordbook/api/internal/validator"
)

func main() {
	filePath := flag.String("file", "data/words.txt", "Path to word list file")
	batchSize := flag.Int("batch", 1000, "Batch size for inserts")
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
	if err := database.Migrate(db); err != nil {
		logger.Error("migrate database", "error", err)
		os.Exit(1)
	}

	raw, err := validator.ReadWordList(*filePath)
	if err != nil {
		logger.Error("load word list", "path", *filePath, "error", err)
		os.Exit(1)
	}
	words := validator.FilterValidWords(raw)
	logger.Info("loaded word list", "path", *filePath, "lines", len(raw), "valid", len(words))

	inserted, err := repository.NewWordRepository(db).CreateMany(context.Background(), words, *batchSize)
	if err != nil {
		logger.Error("seed words", "inserted", inserted, "error", err)
		os.Exit(1)
	}
	logger.Info("seeding complete", "inserted", inserted, "skipped", int64(len(words))-inserted)
}
