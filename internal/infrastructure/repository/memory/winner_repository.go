package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/darts-league/internal/domain/qualification"
)

type winnerKey struct {
	scopeID   string
	eventName string
}

type WinnerRepository struct {
	mu    sync.RWMutex
	items map[winnerKey]qualification.EventWinner
}

func NewWinnerRepository() *WinnerRepository {
	return &WinnerRepository{items: make(map[winnerKey]qualification.EventWinner)}
}

func (r *WinnerRepository) UpsertWinner(_ context.Context, w qualification.EventWinner) error {
	r.mu.Lock()
	r.items[winnerKey{scopeID: w.ScopeID, eventName: w.EventName}] = w
	r.mu.Unlock()
	return nil
}

func (r *WinnerRepository) ListWinners(_ context.Context, scopeID string) ([]qualification.EventWinner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]qualification.EventWinner, 0)
	for key, w := range r.items {
		if key.scopeID == scopeID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventNumber != out[j].EventNumber {
			return out[i].EventNumber < out[j].EventNumber
		}
		return out[i].EventName < out[j].EventName
	})
	return out, nil
}
