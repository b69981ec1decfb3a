package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
)

func TestStatRepository_UpsertOverwritesWholeRecord(t *testing.T) {
	t.Parallel()

	repo := NewStatRepository()
	first := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return first }

	ctx := context.Background()
	key := matchstats.Key{ScopeID: "club-a", EventName: "open-1", MatchID: "m1", PlayerName: "Josh Rock"}
	nine := 101.2
	if err := repo.Upsert(ctx, matchstats.PlayerStatRecord{
		Key: key, Count180s: 3, FirstNineAverage: &nine, Checkout: &matchstats.CheckoutStats{HighestCheckout: 161},
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	repo.now = func() time.Time { return first.Add(time.Hour) }
	if err := repo.Upsert(ctx, matchstats.PlayerStatRecord{Key: key, Count180s: 1}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.ListByScope(ctx, "club-a", matchstats.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	r := got[0]
	if r.Count180s != 1 || r.FirstNineAverage != nil || r.Checkout != nil {
		t.Fatalf("expected full overwrite, got %+v", r)
	}
	if !r.CreatedAt.Equal(first) || !r.UpdatedAt.Equal(first.Add(time.Hour)) {
		t.Fatalf("unexpected timestamps created=%s updated=%s", r.CreatedAt, r.UpdatedAt)
	}
}

func TestStatRepository_ListByScopeFilters(t *testing.T) {
	t.Parallel()

	repo := NewStatRepository()
	ctx := context.Background()
	for _, k := range []matchstats.Key{
		{ScopeID: "club-a", EventName: "open-1", MatchID: "m1", PlayerName: "a"},
		{ScopeID: "club-a", EventName: "open-2", MatchID: "m2", PlayerName: "a"},
		{ScopeID: "club-a", EventName: "open-2", MatchID: "m2", PlayerName: "b"},
		{ScopeID: "club-b", EventName: "open-1", MatchID: "m1", PlayerName: "a"},
	} {
		if err := repo.Upsert(ctx, matchstats.PlayerStatRecord{Key: k}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	byEvent, _ := repo.ListByScope(ctx, "club-a", matchstats.Filter{EventName: "open-2"})
	if len(byEvent) != 2 {
		t.Fatalf("expected 2 open-2 records, got %d", len(byEvent))
	}
	byPlayer, _ := repo.ListByScope(ctx, "club-a", matchstats.Filter{PlayerName: "a"})
	if len(byPlayer) != 2 || byPlayer[0].EventName != "open-1" {
		t.Fatalf("unexpected player records: %+v", byPlayer)
	}
}
