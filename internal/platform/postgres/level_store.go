package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/readquill/readquill-api/internal/domain"
	"github.com/readquill/readquill-api/internal/store"
)

// LevelStore implements store.LevelStore on PostgreSQL.
type LevelStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLevelStore creates a PostgreSQL level store.
func NewLevelStore(db store.DBTX, logger *slog.Logger) *LevelStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency.
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LevelStore{
		db:     db,
		logger: logger.With(slog.String("component", "level_store")),
	}
}

var _ store.LevelStore = (*LevelStore)(nil)

// WithTx implements store.LevelStore.WithTx.
func (s *LevelStore) WithTx(tx *sql.Tx) store.LevelStore {
	return &LevelStore{db: tx, logger: s.logger}
}

const levelColumns = "id, name, description, mastery_threshold"

// CreateMultiple implements store.LevelStore.CreateMultiple.
func (s *LevelStore) CreateMultiple(ctx context.Context, levels []*domain.Level) error {
	if len(levels) == 0 {
		return nil
	}

	builder := psql.Insert("levels").
		Columns("id", "name", "description", "mastery_threshold")
	for _, level := range levels {
		if err := level.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		builder = builder.Values(level.ID, level.Name, level.Description, level.MasteryThreshold)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID implements store.LevelStore.GetByID.
func (s *LevelStore) GetByID(ctx context.Context, id int) (*domain.Level, error) {
	query, args, err := psql.Select(levelColumns).
		From("levels").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var level domain.Level
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&level.ID, &level.Name, &level.Description, &level.MasteryThreshold)
	if err != nil {
		return nil, notFoundAs(mapError(err), store.ErrLevelNotFound)
	}
	return &level, nil
}

// ListAll implements store.LevelStore.ListAll.
func (s *LevelStore) ListAll(ctx context.Context) ([]*domain.Level, error) {
	query, args, err := psql.Select(levelColumns).
		From("levels").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var levels []*domain.Level
	for rows.Next() {
		var level domain.Level
		if err := rows.Scan(&level.ID, &level.Name, &level.Description, &level.MasteryThreshold); err != nil {
			return nil, mapError(err)
		}
		levels = append(levels, &level)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return levels, nil
}
