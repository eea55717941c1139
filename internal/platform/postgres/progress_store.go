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

// ProgressStore implements store.ProgressStore on PostgreSQL. Rows are
// keyed (user_id, card_id); GetForUpdate takes a row lock so concurrent
// review submissions for the same card serialize.
type ProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProgressStore creates a PostgreSQL progress store.
func NewProgressStore(db store.DBTX, logger *slog.Logger) *ProgressStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency.
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

var _ store.ProgressStore = (*ProgressStore)(nil)

// WithTx implements store.ProgressStore.WithTx.
func (s *ProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &ProgressStore{db: tx, logger: s.logger}
}

const progressColumns = "user_id, card_id, stage, step, stability, difficulty, " +
	"elapsed_days, scheduled_days, reps, lapses, last_review_at, due, " +
	"highest_stability, mastered_at, created_at, updated_at"

// Create implements store.ProgressStore.Create.
func (s *ProgressStore) Create(ctx context.Context, p *domain.CardProgress) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query, args, err := psql.Insert("card_progress").
		Columns("user_id", "card_id", "stage", "step", "stability", "difficulty",
			"elapsed_days", "scheduled_days", "reps", "lapses", "last_review_at",
			"due", "highest_stability", "mastered_at", "created_at", "updated_at").
		Values(p.UserID, p.CardID, p.Stage.String(), p.Step, p.Stability, p.Difficulty,
			p.ElapsedDays, p.ScheduledDays, p.Reps, p.Lapses, nullTime(p.LastReviewAt),
			p.Due, p.HighestStability, p.MasteredAt, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return mapError(err)
	}
	return nil
}

// Get implements store.ProgressStore.Get.
func (s *ProgressStore) Get(ctx context.Context, userID uuid.UUID, cardID string) (*domain.CardProgress, error) {
	return s.get(ctx, userID, cardID, false)
}

// GetForUpdate implements store.ProgressStore.GetForUpdate.
func (s *ProgressStore) GetForUpdate(ctx context.Context, userID uuid.UUID, cardID string) (*domain.CardProgress, error) {
	return s.get(ctx, userID, cardID, true)
}

func (s *ProgressStore) get(ctx context.Context, userID uuid.UUID, cardID string, forUpdate bool) (*domain.CardProgress, error) {
	builder := psql.Select(progressColumns).
		From("card_progress").
		Where(sq.Eq{"user_id": userID, "card_id": cardID})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	progress, err := scanProgress(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFoundAs(mapError(err), store.ErrProgressNotFound)
	}
	return progress, nil
}

// Update implements store.ProgressStore.Update.
func (s *ProgressStore) Update(ctx context.Context, p *domain.CardProgress) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query, args, err := psql.Update("card_progress").
		Set("stage", p.Stage.String()).
		Set("step", p.Step).
		Set("stability", p.Stability).
		Set("difficulty", p.Difficulty).
		Set("elapsed_days", p.ElapsedDays).
		Set("scheduled_days", p.ScheduledDays).
		Set("reps", p.Reps).
		Set("lapses", p.Lapses).
		Set("last_review_at", nullTime(p.LastReviewAt)).
		Set("due", p.Due).
		Set("highest_stability", p.HighestStability).
		Set("mastered_at", p.MasteredAt).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"user_id": p.UserID, "card_id": p.CardID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	return checkRowsAffected(result, store.ErrProgressNotFound)
}

// ListByUser implements store.ProgressStore.ListByUser.
func (s *ProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CardProgress, error) {
	query, args, err := psql.Select(progressColumns).
		From("card_progress").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("due ASC", "card_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.CardProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, mapError(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// CountCreatedSince implements store.ProgressStore.CountCreatedSince.
func (s *ProgressStore) CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("card_progress").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"created_at": since}).
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

// CountMasteredAtLevel implements store.ProgressStore.CountMasteredAtLevel.
func (s *ProgressStore) CountMasteredAtLevel(ctx context.Context, userID uuid.UUID, level int) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("card_progress cp").
		Join("cards c ON c.id = cp.card_id").
		Where(sq.Eq{"cp.user_id": userID, "c.level_id": level}).
		Where(sq.GtOrEq{"cp.highest_stability": domain.MasteryStabilityDays}).
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

func scanProgress(row rowScanner) (*domain.CardProgress, error) {
	var (
		p          domain.CardProgress
		stage      string
		lastReview sql.NullTime
		masteredAt sql.NullTime
	)
	err := row.Scan(&p.UserID, &p.CardID, &stage, &p.Step, &p.Stability, &p.Difficulty,
		&p.ElapsedDays, &p.ScheduledDays, &p.Reps, &p.Lapses, &lastReview, &p.Due,
		&p.HighestStability, &masteredAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := p.Stage.UnmarshalText([]byte(stage)); err != nil {
		return nil, err
	}
	if lastReview.Valid {
		p.LastReviewAt = lastReview.Time
	}
	if masteredAt.Valid {
		t := masteredAt.Time
		p.MasteredAt = &t
	}
	return &p, nil
}

// nullTime maps the zero time to NULL so "never reviewed" round-trips.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
