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

// ProfileStore implements store.ProfileStore on PostgreSQL.
type ProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProfileStore creates a PostgreSQL profile store.
func NewProfileStore(db store.DBTX, logger *slog.Logger) *ProfileStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency.
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

var _ store.ProfileStore = (*ProfileStore)(nil)

// WithTx implements store.ProfileStore.WithTx.
func (s *ProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &ProfileStore{db: tx, logger: s.logger}
}

// Create implements store.ProfileStore.Create.
func (s *ProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query, args, err := psql.Insert("profiles").
		Columns("id", "name", "current_level", "created_at", "updated_at").
		Values(profile.ID, profile.Name, profile.CurrentLevel, profile.CreatedAt, profile.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return mapError(err)
	}
	return nil
}

// Get implements store.ProfileStore.Get.
func (s *ProfileStore) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query, args, err := psql.Select("id, name, current_level, created_at, updated_at").
		From("profiles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var profile domain.Profile
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&profile.ID, &profile.Name, &profile.CurrentLevel, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, notFoundAs(mapError(err), store.ErrProfileNotFound)
	}
	return &profile, nil
}

// UpdateLevel implements store.ProfileStore.UpdateLevel.
func (s *ProfileStore) UpdateLevel(ctx context.Context, id uuid.UUID, level int) error {
	if level < 1 || level > domain.MaxLevel {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidCardLevel)
	}

	query, args, err := psql.Update("profiles").
		Set("current_level", level).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	return checkRowsAffected(result, store.ErrProfileNotFound)
}
