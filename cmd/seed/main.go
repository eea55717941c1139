// Package main implements the catalog seeding tool. It loads levels and
// cards from JSON files into the database, falling back to the embedded
// starter catalog when no files are given.
package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/readquill/readquill-api/internal/config"
	"github.com/readquill/readquill-api/internal/domain"
	"github.com/readquill/readquill-api/internal/platform/logger"
	"github.com/readquill/readquill-api/internal/platform/postgres"
	"github.com/readquill/readquill-api/internal/store"
)

//go:embed seeddata/*.json
var seedFS embed.FS

func main() {
	levelsPath := flag.String("levels", "", "path to levels JSON file (default: embedded catalog)")
	cardsPath := flag.String("cards", "", "path to cards JSON file (default: embedded catalog)")
	flag.Parse()

	if err := run(context.Background(), *levelsPath, *cardsPath); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}

func run(ctx context.Context, levelsPath, cardsPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)

	db, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := postgres.MigrateUp(ctx, db, appLogger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	levels, err := loadJSON[[]*domain.Level](levelsPath, "seeddata/levels.json")
	if err != nil {
		return fmt.Errorf("failed to load levels: %w", err)
	}
	cards, err := loadJSON[[]*domain.Card](cardsPath, "seeddata/cards.json")
	if err != nil {
		return fmt.Errorf("failed to load cards: %w", err)
	}

	levelStore := postgres.NewLevelStore(db, appLogger)
	cardStore := postgres.NewCardStore(db, appLogger)

	err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		if err := levelStore.WithTx(tx).CreateMultiple(ctx, levels); err != nil {
			return fmt.Errorf("seed levels: %w", err)
		}
		if err := cardStore.WithTx(tx).CreateMultiple(ctx, cards); err != nil {
			return fmt.Errorf("seed cards: %w", err)
		}
		return nil
	})
	if err != nil {
		if store.IsDuplicate(err) {
			return fmt.Errorf("catalog already seeded: %w", err)
		}
		return err
	}

	appLogger.Info("catalog seeded",
		"levels", len(levels),
		"cards", len(cards))
	return nil
}

// loadJSON reads and decodes a JSON file from disk, or from the embedded
// seed data when path is empty.
func loadJSON[T any](path, embedded string) (T, error) {
	var out T

	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = seedFS.ReadFile(embedded)
	}
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
