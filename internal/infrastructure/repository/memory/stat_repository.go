package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
)

type StatRepository struct {
	mu    sync.RWMutex
	items map[matchstats.Key]matchstats.PlayerStatRecord
	now   func() time.Time
}

func NewStatRepository() *StatRepository {
	return &StatRepository{
		items: make(map[matchstats.Key]matchstats.PlayerStatRecord),
		now:   time.Now,
	}
}

func (r *StatRepository) Upsert(_ context.Context, record matchstats.PlayerStatRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	record.CreatedAt = now
	if existing, ok := r.items[record.Key]; ok {
		record.CreatedAt = existing.CreatedAt
	}
	record.UpdatedAt = now
	r.items[record.Key] = cloneRecord(record)
	return nil
}

func (r *StatRepository) ListByScope(_ context.Context, scopeID string, filter matchstats.Filter) ([]matchstats.PlayerStatRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchstats.PlayerStatRecord, 0)
	for key, record := range r.items {
		if key.ScopeID != scopeID || !filter.Match(record) {
			continue
		}
		out = append(out, cloneRecord(record))
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.EventName != b.EventName {
			return a.EventName < b.EventName
		}
		if a.MatchID != b.MatchID {
			return a.MatchID < b.MatchID
		}
		return a.PlayerName < b.PlayerName
	})
	return out, nil
}

func cloneRecord(r matchstats.PlayerStatRecord) matchstats.PlayerStatRecord {
	if r.FirstNineAverage != nil {
		v := *r.FirstNineAverage
		r.FirstNineAverage = &v
	}
	if r.Checkout != nil {
		c := *r.Checkout
		r.Checkout = &c
	}
	return r
}
