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

// CardStore implements store.CardStore on PostgreSQL.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCardStore creates a PostgreSQL card store.
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency.
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

var _ store.CardStore = (*CardStore)(nil)

// WithTx implements store.CardStore.WithTx.
func (s *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &CardStore{db: tx, logger: s.logger}
}

const cardColumns = "id, level_id, content, content_type, image_url, audio_url, created_at"

// CreateMultiple implements store.CardStore.CreateMultiple.
func (s *CardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	if len(cards) == 0 {
		return nil
	}
	builder := psql.Insert("cards").
		Columns("id", "level_id", "content", "content_type", "image_url", "audio_url", "created_at")
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		builder = builder.Values(c.ID, c.LevelID, c.Content, string(c.ContentType),
			nullString(c.ImageURL), nullString(c.AudioURL), c.CreatedAt)
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

// GetByID implements store.CardStore.GetByID.
func (s *CardStore) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	query, args, err := psql.Select(cardColumns).
		From("cards").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	card, err := scanCard(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFoundAs(mapError(err), store.ErrCardNotFound)
	}
	return card, nil
}

// ListAtOrBelowLevel implements store.CardStore.ListAtOrBelowLevel.
func (s *CardStore) ListAtOrBelowLevel(ctx context.Context, level int) ([]*domain.Card, error) {
	query, args, err := psql.Select(cardColumns).
		From("cards").
		Where(sq.LtOrEq{"level_id": level}).
		OrderBy("level_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return s.queryCards(ctx, query, args)
}

// CountAtLevel implements store.CardStore.CountAtLevel.
func (s *CardStore) CountAtLevel(ctx context.Context, level int) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("cards").
		Where(sq.Eq{"level_id": level}).
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

// ListWithoutAudio implements store.CardStore.ListWithoutAudio.
func (s *CardStore) ListWithoutAudio(ctx context.Context) ([]*domain.Card, error) {
	query, args, err := psql.Select(cardColumns).
		From("cards").
		Where(sq.Or{sq.Eq{"audio_url": nil}, sq.Eq{"audio_url": ""}}).
		OrderBy("level_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return s.queryCards(ctx, query, args)
}

// SetAudioURL implements store.CardStore.SetAudioURL.
func (s *CardStore) SetAudioURL(ctx context.Context, id, url string) error {
	query, args, err := psql.Update("cards").
		Set("audio_url", url).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	return checkRowsAffected(result, store.ErrCardNotFound)
}

func (s *CardStore) queryCards(ctx context.Context, query string, args []any) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, mapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return cards, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		card        domain.Card
		contentType string
		imageURL    sql.NullString
		audioURL    sql.NullString
	)
	err := row.Scan(&card.ID, &card.LevelID, &card.Content, &contentType,
		&imageURL, &audioURL, &card.CreatedAt)
	if err != nil {
		return nil, err
	}
	card.ContentType = domain.ContentType(contentType)
	card.ImageURL = imageURL.String
	card.AudioURL = audioURL.String
	return &card, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
