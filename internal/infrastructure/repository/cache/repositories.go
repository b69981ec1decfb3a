package cache

import (
	"context"
	"net/url"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/domain/qualification"
	basecache "github.com/riskibarqy/darts-league/internal/platform/cache"
)

// StatRepository caches scope reads and drops every cached read of a
// scope when one of its records is written.
type StatRepository struct {
	next  matchstats.Repository
	cache *basecache.Store[[]matchstats.PlayerStatRecord]
}

func NewStatRepository(next matchstats.Repository, cache *basecache.Store[[]matchstats.PlayerStatRecord]) *StatRepository {
	return &StatRepository{next: next, cache: cache}
}

func (r *StatRepository) Upsert(ctx context.Context, record matchstats.PlayerStatRecord) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, statScopePrefix(record.ScopeID))
	return nil
}

func (r *StatRepository) ListByScope(ctx context.Context, scopeID string, filter matchstats.Filter) ([]matchstats.PlayerStatRecord, error) {
	key := statScopePrefix(scopeID) + url.QueryEscape(filter.EventName) + "|" + url.QueryEscape(filter.PlayerName)
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]matchstats.PlayerStatRecord, error) {
		return r.next.ListByScope(ctx, scopeID, filter)
	})
	if err != nil {
		return nil, err
	}
	return append([]matchstats.PlayerStatRecord(nil), items...), nil
}

type WinnerRepository struct {
	next  qualification.Repository
	cache *basecache.Store[[]qualification.EventWinner]
}

func NewWinnerRepository(next qualification.Repository, cache *basecache.Store[[]qualification.EventWinner]) *WinnerRepository {
	return &WinnerRepository{next: next, cache: cache}
}

func (r *WinnerRepository) UpsertWinner(ctx context.Context, w qualification.EventWinner) error {
	if err := r.next.UpsertWinner(ctx, w); err != nil {
		return err
	}
	r.cache.Delete(ctx, winnersKey(w.ScopeID))
	return nil
}

func (r *WinnerRepository) ListWinners(ctx context.Context, scopeID string) ([]qualification.EventWinner, error) {
	items, err := r.cache.GetOrLoad(ctx, winnersKey(scopeID), func(ctx context.Context) ([]qualification.EventWinner, error) {
		return r.next.ListWinners(ctx, scopeID)
	})
	if err != nil {
		return nil, err
	}
	return append([]qualification.EventWinner(nil), items...), nil
}

// Key components are query-escaped so no name can contain a separator.
func statScopePrefix(scopeID string) string {
	return "stats:" + url.QueryEscape(scopeID) + ":"
}

func winnersKey(scopeID string) string {
	return "winners:" + url.QueryEscape(scopeID)
}
