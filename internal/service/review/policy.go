package review

import (
	"time"

	"github.com/readquill/readquill-api/internal/domain"
)

// Limits are the daily throughput caps for a review session.
type Limits struct {
	// MaxReviewsPerDay caps total reviews per UTC day, counting every
	// review including same-day learning-stage retries.
	MaxReviewsPerDay int

	// MaxNewCardsPerDay caps the number of never-seen cards introduced
	// per UTC day.
	MaxNewCardsPerDay int
}

// DefaultLimits returns the production caps: 20 reviews and 10 new cards
// per day.
func DefaultLimits() Limits {
	return Limits{MaxReviewsPerDay: 20, MaxNewCardsPerDay: 10}
}

// Counters are a user's consumption of the daily caps, derived from the
// review log and progress creation timestamps as of a given instant.
type Counters struct {
	Reviews  int // Reviews performed today, including retries.
	NewCards int // New cards introduced today.
}

// Snapshot is the read-only per-user state the selection policy consumes:
// a consistent view of everything the user has learned plus the unlocked
// part of the catalog.
type Snapshot struct {
	// CurrentLevel is the user's highest unlocked level.
	CurrentLevel int

	// Progress holds the memory state of every card the user has ever
	// been introduced to.
	Progress []*domain.CardProgress

	// Cards is the catalog restricted to levels at or below CurrentLevel.
	Cards []*domain.Card

	// Counters is today's cap consumption.
	Counters Counters
}

// Selection identifies the single card chosen for presentation.
type Selection struct {
	Card  *domain.Card `json:"card"`
	IsNew bool         `json:"is_new"`
}

// SelectNext picks at most one card to present, in strict priority order:
//
//  1. The daily review cap ends the session outright.
//  2. The due card with the earliest due instant (ties broken by card ID)
//     is presented before anything else.
//  3. The daily new-card cap blocks introductions once reached.
//  4. Otherwise the unseen unlocked card with the lowest level, then the
//     lowest card ID, is introduced as new.
//
// The bool result is false when there is nothing to do: session complete.
// SelectNext never mutates its inputs and is deterministic, so it is safe
// to call speculatively: unchanged inputs always yield the same selection.
func SelectNext(snap Snapshot, limits Limits, now time.Time) (Selection, bool) {
	if snap.Counters.Reviews >= limits.MaxReviewsPerDay {
		return Selection{}, false
	}

	catalog := make(map[string]*domain.Card, len(snap.Cards))
	for _, c := range snap.Cards {
		catalog[c.ID] = c
	}

	seen := make(map[string]*domain.CardProgress, len(snap.Progress))
	var due *domain.CardProgress
	for _, p := range snap.Progress {
		seen[p.CardID] = p
		if p.Due.After(now) {
			continue
		}
		// Progress referencing a card no longer in the catalog is not
		// presentable.
		if _, ok := catalog[p.CardID]; !ok {
			continue
		}
		if due == nil || earlier(p, due) {
			due = p
		}
	}
	if due != nil {
		return Selection{Card: catalog[due.CardID], IsNew: false}, true
	}

	if snap.Counters.NewCards >= limits.MaxNewCardsPerDay {
		return Selection{}, false
	}

	var fresh *domain.Card
	for _, c := range snap.Cards {
		if c.LevelID > snap.CurrentLevel {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			continue
		}
		if fresh == nil || c.LevelID < fresh.LevelID ||
			(c.LevelID == fresh.LevelID && c.ID < fresh.ID) {
			fresh = c
		}
	}
	if fresh == nil {
		return Selection{}, false
	}
	return Selection{Card: fresh, IsNew: true}, true
}

// earlier orders due candidates by due instant, then card ID, so selection
// stays deterministic when several cards share a due time.
func earlier(a, b *domain.CardProgress) bool {
	if !a.Due.Equal(b.Due) {
		return a.Due.Before(b.Due)
	}
	return a.CardID < b.CardID
}
