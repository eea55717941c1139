// Package main implements the pronunciation audio backfill tool. It finds
// catalog cards without audio, synthesizes MP3s for their content, writes
// them under the output directory, and records the resulting URLs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/readquill/readquill-api/internal/config"
	"github.com/readquill/readquill-api/internal/platform/logger"
	"github.com/readquill/readquill-api/internal/platform/postgres"
	"github.com/readquill/readquill-api/internal/platform/speech"
)

func main() {
	outDir := flag.String("out", "audio", "directory to write MP3 files into")
	baseURL := flag.String("base-url", "/audio", "URL prefix recorded for generated files")
	dryRun := flag.Bool("dry-run", false, "list cards missing audio without generating")
	flag.Parse()

	if err := run(context.Background(), *outDir, *baseURL, *dryRun); err != nil {
		log.Fatalf("Audio generation failed: %v", err)
	}
}

func run(ctx context.Context, outDir, baseURL string, dryRun bool) error {
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

	cardStore := postgres.NewCardStore(db, appLogger)
	cards, err := cardStore.ListWithoutAudio(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}
	if len(cards) == 0 {
		appLogger.Info("all cards have audio")
		return nil
	}

	if dryRun {
		for _, card := range cards {
			fmt.Printf("%s\t%s\n", card.ID, card.Content)
		}
		return nil
	}

	if cfg.Speech.APIKey == "" {
		return fmt.Errorf("speech API key not configured, set READQUILL_SPEECH_API_KEY")
	}
	synth := speech.NewClient(cfg.Speech.APIKey, cfg.Speech.VoiceID)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var generated, failed int
	for _, card := range cards {
		audio, err := synth.Synthesize(ctx, card.Content)
		if err != nil {
			appLogger.Error("failed to synthesize audio",
				"card_id", card.ID,
				"error", err)
			failed++
			continue
		}

		fileName := card.ID + ".mp3"
		if err := os.WriteFile(filepath.Join(outDir, fileName), audio, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", fileName, err)
		}

		audioURL := baseURL + "/" + fileName
		if err := cardStore.SetAudioURL(ctx, card.ID, audioURL); err != nil {
			return fmt.Errorf("failed to record audio URL for %s: %w", card.ID, err)
		}

		appLogger.Info("generated audio",
			"card_id", card.ID,
			"url", audioURL)
		generated++
	}

	appLogger.Info("audio backfill finished",
		"generated", generated,
		"failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d cards failed", failed)
	}
	return nil
}
