package postgres

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	qb "github.com/riskibarqy/darts-league/internal/platform/querybuilder"
)

func TestNullFloat64(t *testing.T) {
	t.Run("nil pointer is null", func(t *testing.T) {
		if got := nullFloat64(nil); got.Valid {
			t.Fatalf("expected null, got %+v", got)
		}
	})

	t.Run("value round trips", func(t *testing.T) {
		v := 101.25
		got := float64Ptr(nullFloat64(&v))
		if got == nil || *got != v {
			t.Fatalf("expected %v, got %v", v, got)
		}
		if got == &v {
			t.Fatalf("expected a copy, got the input pointer")
		}
	})

	t.Run("null is nil pointer", func(t *testing.T) {
		if got := float64Ptr(sql.NullFloat64{}); got != nil {
			t.Fatalf("expected nil, got %v", *got)
		}
	})
}

func TestPlayerMatchStatsModel_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	firstNine := 104.3
	record := matchstats.PlayerStatRecord{
		Key:              matchstats.Key{ScopeID: "club-a", EventName: "Event 1", MatchID: "m-1", PlayerName: "Ann"},
		LegsPlayed:       5,
		LegsWon:          3,
		Average:          88.4,
		FirstNineAverage: &firstNine,
		Count180s:        1,
		Count140Plus:     4,
		Count100Plus:     9,
		HighestScore:     180,
		Checkout:         &matchstats.CheckoutStats{Opportunities: 6, Hits: 3, HighestCheckout: 121, AverageFinish: 44.5, EfficiencyLabel: "50.00%"},
		ProfileLink:      "https://recap.dartconnect.com/card/1",
	}

	got := newPlayerMatchStatsTableModel(record, now).toDomain()
	if got.Key != record.Key || got.Average != record.Average || got.Count140Plus != 4 {
		t.Fatalf("unexpected scalar fields: %+v", got)
	}
	if got.FirstNineAverage == nil || *got.FirstNineAverage != firstNine {
		t.Fatalf("unexpected first nine: %v", got.FirstNineAverage)
	}
	if got.Checkout == nil || *got.Checkout != *record.Checkout {
		t.Fatalf("unexpected checkout: %+v", got.Checkout)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: %v %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestPlayerMatchStatsModel_AbsentOptionalsStayNil(t *testing.T) {
	record := matchstats.PlayerStatRecord{
		Key: matchstats.Key{ScopeID: "club-a", EventName: "Event 1", MatchID: "m-1", PlayerName: "Bob"},
	}

	model := newPlayerMatchStatsTableModel(record, time.Now())
	if model.FirstNineAverage.Valid || model.CheckoutOpportunities.Valid || model.CheckoutEfficiency.Valid {
		t.Fatalf("expected null optional columns, got %+v", model)
	}

	got := model.toDomain()
	if got.FirstNineAverage != nil || got.Checkout != nil {
		t.Fatalf("expected nil optionals, got %+v", got)
	}
}

func TestPlayerMatchStatsUpsert_PreservesCreatedAt(t *testing.T) {
	query, args, err := qb.UpsertModel(playerMatchStatsTable, playerMatchStatsTableModel{}, playerMatchStatsKey, playerMatchStatsKeep)
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}
	if len(args) != len(playerMatchStatsSelectColumns) {
		t.Fatalf("expected %d args, got %d", len(playerMatchStatsSelectColumns), len(args))
	}
	if !strings.Contains(query, "ON CONFLICT (scope_id, event_name, match_id, player_name) DO UPDATE SET") {
		t.Fatalf("missing conflict clause: %s", query)
	}
	if strings.Contains(query, "created_at = EXCLUDED.created_at") {
		t.Fatalf("created_at must survive an overwrite: %s", query)
	}
	for _, col := range []string{"legs_played", "first_nine_average", "checkout_efficiency", "updated_at"} {
		if !strings.Contains(query, col+" = EXCLUDED."+col) {
			t.Fatalf("expected %s to be overwritten: %s", col, query)
		}
	}
}
