package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/domain"
	"github.com/readquill/readquill-api/internal/store"
)

// ReviewLogStore implements store.ReviewLogStore on PostgreSQL. The table
// is append-only; counters and streaks are derived from it at read time.
type ReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewLogStore creates a PostgreSQL review log store.
func NewReviewLogStore(db store.DBTX, logger *slog.Logger) *ReviewLogStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency.
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

var _ store.ReviewLogStore = (*ReviewLogStore)(nil)

// WithTx implements store.ReviewLogStore.WithTx.
func (s *ReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &ReviewLogStore{db: tx, logger: s.logger}
}

// Append implements store.ReviewLogStore.Append.
func (s *ReviewLogStore) Append(ctx context.Context, log *domain.ReviewLog) error {
	query, args, err := psql.Insert("review_logs").
		Columns("user_id", "card_id", "rating", "reviewed_at",
			"result_stage", "result_stability", "result_difficulty", "result_scheduled_days").
		Values(log.UserID, log.CardID, int(log.Rating), log.ReviewedAt,
			log.Result.Stage.String(), log.Result.Stability, log.Result.Difficulty,
			log.Result.ScheduledDays).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&log.ID); err != nil {
		return mapError(err)
	}
	return nil
}

// CountSince implements store.ReviewLogStore.CountSince.
func (s *ReviewLogStore) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("review_logs").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"reviewed_at": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// CountAll implements store.ReviewLogStore.CountAll.
func (s *ReviewLogStore) CountAll(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("review_logs").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// ReviewDays implements store.ReviewLogStore.ReviewDays.
func (s *ReviewLogStore) ReviewDays(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	query, args, err := psql.
		Select("DISTINCT date_trunc('day', reviewed_at AT TIME ZONE 'UTC') AS day").
		From("review_logs").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("day DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, mapError(err)
		}
		days = append(days, day.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return days, nil
}
