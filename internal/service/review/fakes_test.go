package review

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/domain"
	"github.com/readquill/readquill-api/internal/store"
)

// In-memory store fakes. WithTx returns the same instance: the fakes have
// no transactional semantics, they only record state across calls.

type fakeCardStore struct {
	cards map[string]*domain.Card
}

func newFakeCardStore(cards ...*domain.Card) *fakeCardStore {
	f := &fakeCardStore{cards: make(map[string]*domain.Card)}
	for _, c := range cards {
		f.cards[c.ID] = c
	}
	return f
}

func (f *fakeCardStore) CreateMultiple(_ context.Context, cards []*domain.Card) error {
	for _, c := range cards {
		if _, ok := f.cards[c.ID]; ok {
			return store.ErrDuplicate
		}
		f.cards[c.ID] = c
	}
	return nil
}

func (f *fakeCardStore) GetByID(_ context.Context, id string) (*domain.Card, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return c, nil
}

func (f *fakeCardStore) ListAtOrBelowLevel(_ context.Context, level int) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range f.cards {
		if c.LevelID <= level {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LevelID != out[j].LevelID {
			return out[i].LevelID < out[j].LevelID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeCardStore) CountAtLevel(_ context.Context, level int) (int, error) {
	n := 0
	for _, c := range f.cards {
		if c.LevelID == level {
			n++
		}
	}
	return n, nil
}

func (f *fakeCardStore) ListWithoutAudio(_ context.Context) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range f.cards {
		if c.AudioURL == "" {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCardStore) SetAudioURL(_ context.Context, id, url string) error {
	c, ok := f.cards[id]
	if !ok {
		return store.ErrCardNotFound
	}
	c.AudioURL = url
	return nil
}

func (f *fakeCardStore) WithTx(*sql.Tx) store.CardStore { return f }

type progressKey struct {
	userID uuid.UUID
	cardID string
}

type fakeProgressStore struct {
	rows map[progressKey]*domain.CardProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: make(map[progressKey]*domain.CardProgress)}
}

func (f *fakeProgressStore) Create(_ context.Context, p *domain.CardProgress) error {
	key := progressKey{p.UserID, p.CardID}
	if _, ok := f.rows[key]; ok {
		return store.ErrDuplicate
	}
	f.rows[key] = p.Clone()
	return nil
}

func (f *fakeProgressStore) Get(_ context.Context, userID uuid.UUID, cardID string) (*domain.CardProgress, error) {
	p, ok := f.rows[progressKey{userID, cardID}]
	if !ok {
		return nil, store.ErrProgressNotFound
	}
	return p.Clone(), nil
}

func (f *fakeProgressStore) GetForUpdate(ctx context.Context, userID uuid.UUID, cardID string) (*domain.CardProgress, error) {
	return f.Get(ctx, userID, cardID)
}

func (f *fakeProgressStore) Update(_ context.Context, p *domain.CardProgress) error {
	key := progressKey{p.UserID, p.CardID}
	if _, ok := f.rows[key]; !ok {
		return store.ErrProgressNotFound
	}
	f.rows[key] = p.Clone()
	return nil
}

func (f *fakeProgressStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.CardProgress, error) {
	var out []*domain.CardProgress
	for key, p := range f.rows {
		if key.userID == userID {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CardID < out[j].CardID })
	return out, nil
}

func (f *fakeProgressStore) CountCreatedSince(_ context.Context, userID uuid.UUID, since time.Time) (int, error) {
	n := 0
	for key, p := range f.rows {
		if key.userID == userID && !p.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeProgressStore) CountMasteredAtLevel(_ context.Context, userID uuid.UUID, level int) (int, error) {
	n := 0
	for key, p := range f.rows {
		if key.userID == userID && p.HighestStability >= domain.MasteryStabilityDays {
			n++
		}
	}
	_ = level // the fake has no card join; tests seed only one level
	return n, nil
}

func (f *fakeProgressStore) WithTx(*sql.Tx) store.ProgressStore { return f }

type fakeLogStore struct {
	entries []*domain.ReviewLog
	nextID  int64
}

func newFakeLogStore() *fakeLogStore { return &fakeLogStore{nextID: 1} }

func (f *fakeLogStore) Append(_ context.Context, log *domain.ReviewLog) error {
	log.ID = f.nextID
	f.nextID++
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeLogStore) CountSince(_ context.Context, userID uuid.UUID, since time.Time) (int, error) {
	n := 0
	for _, e := range f.entries {
		if e.UserID == userID && !e.ReviewedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeLogStore) CountAll(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, e := range f.entries {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLogStore) ReviewDays(_ context.Context, userID uuid.UUID) ([]time.Time, error) {
	seen := make(map[time.Time]bool)
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		u := e.ReviewedAt.UTC()
		day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
		seen[day] = true
	}
	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days, nil
}

func (f *fakeLogStore) WithTx(*sql.Tx) store.ReviewLogStore { return f }

type fakeLevelStore struct {
	levels map[int]*domain.Level
}

func newFakeLevelStore(levels ...*domain.Level) *fakeLevelStore {
	f := &fakeLevelStore{levels: make(map[int]*domain.Level)}
	for _, l := range levels {
		f.levels[l.ID] = l
	}
	return f
}

func (f *fakeLevelStore) CreateMultiple(_ context.Context, levels []*domain.Level) error {
	for _, l := range levels {
		if _, ok := f.levels[l.ID]; ok {
			return store.ErrDuplicate
		}
		f.levels[l.ID] = l
	}
	return nil
}

func (f *fakeLevelStore) GetByID(_ context.Context, id int) (*domain.Level, error) {
	l, ok := f.levels[id]
	if !ok {
		return nil, store.ErrLevelNotFound
	}
	return l, nil
}

func (f *fakeLevelStore) ListAll(_ context.Context) ([]*domain.Level, error) {
	out := make([]*domain.Level, 0, len(f.levels))
	for _, l := range f.levels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLevelStore) WithTx(*sql.Tx) store.LevelStore { return f }

type fakeProfileStore struct {
	profiles map[uuid.UUID]*domain.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (f *fakeProfileStore) Create(_ context.Context, p *domain.Profile) error {
	if _, ok := f.profiles[p.ID]; ok {
		return store.ErrDuplicate
	}
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfileStore) Get(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) UpdateLevel(_ context.Context, id uuid.UUID, level int) error {
	p, ok := f.profiles[id]
	if !ok {
		return store.ErrProfileNotFound
	}
	p.CurrentLevel = level
	return nil
}

func (f *fakeProfileStore) WithTx(*sql.Tx) store.ProfileStore { return f }
