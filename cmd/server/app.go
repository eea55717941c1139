package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/readquill/readquill-api/internal/config"
	"github.com/readquill/readquill-api/internal/domain/srs"
	"github.com/readquill/readquill-api/internal/platform/logger"
	"github.com/readquill/readquill-api/internal/platform/postgres"
	"github.com/readquill/readquill-api/internal/service/auth"
	"github.com/readquill/readquill-api/internal/service/review"
	"github.com/readquill/readquill-api/internal/service/stats"
	"github.com/readquill/readquill-api/internal/store"
)

// application holds the wired dependencies for the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	cardStore     store.CardStore
	progressStore store.ProgressStore
	logStore      store.ReviewLogStore
	levelStore    store.LevelStore
	profileStore  store.ProfileStore

	jwtService    auth.JWTService
	reviewService review.Service
	statsService  *stats.Service
}

// initializeApp loads configuration, connects to the database, applies
// migrations, and wires all services.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.MigrateUp(ctx, db, appLogger); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	cardStore := postgres.NewCardStore(db, appLogger)
	progressStore := postgres.NewProgressStore(db, appLogger)
	logStore := postgres.NewReviewLogStore(db, appLogger)
	levelStore := postgres.NewLevelStore(db, appLogger)
	profileStore := postgres.NewProfileStore(db, appLogger)

	scheduler := srs.NewDefaultScheduler()
	limits := review.Limits{
		MaxReviewsPerDay:  cfg.Scheduler.MaxReviewsPerDay,
		MaxNewCardsPerDay: cfg.Scheduler.MaxNewCardsPerDay,
	}

	reviewService := review.NewService(
		db,
		cardStore,
		progressStore,
		logStore,
		levelStore,
		profileStore,
		scheduler,
		limits,
		appLogger,
	)
	statsService := stats.NewService(
		cardStore,
		progressStore,
		logStore,
		levelStore,
		profileStore,
		appLogger,
	)

	return &application{
		config:        cfg,
		logger:        appLogger,
		db:            db,
		cardStore:     cardStore,
		progressStore: progressStore,
		logStore:      logStore,
		levelStore:    levelStore,
		profileStore:  profileStore,
		jwtService:    jwtService,
		reviewService: reviewService,
		statsService:  statsService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
