package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
)

// playerMatchStatsTableModel mirrors player_match_stats. Checkout columns are
// all null when the match published no checkout row for the player.
type playerMatchStatsTableModel struct {
	ScopeID               string          `db:"scope_id"`
	EventName             string          `db:"event_name"`
	MatchID               string          `db:"match_id"`
	PlayerName            string          `db:"player_name"`
	LegsPlayed            int             `db:"legs_played"`
	LegsWon               int             `db:"legs_won"`
	Average               float64         `db:"average"`
	FirstNineAverage      sql.NullFloat64 `db:"first_nine_average"`
	Count180s             int             `db:"count_180s"`
	Count140Plus          int             `db:"count_140_plus"`
	Count100Plus          int             `db:"count_100_plus"`
	HighestScore          int             `db:"highest_score"`
	CheckoutOpportunities sql.NullInt64   `db:"checkout_opportunities"`
	CheckoutHits          sql.NullInt64   `db:"checkout_hits"`
	HighestCheckout       sql.NullInt64   `db:"highest_checkout"`
	AverageFinish         sql.NullFloat64 `db:"average_finish"`
	CheckoutEfficiency    sql.NullString  `db:"checkout_efficiency"`
	ProfileLink           string          `db:"profile_link"`
	CreatedAt             time.Time       `db:"created_at"`
	UpdatedAt             time.Time       `db:"updated_at"`
}

func newPlayerMatchStatsTableModel(r matchstats.PlayerStatRecord, now time.Time) playerMatchStatsTableModel {
	m := playerMatchStatsTableModel{
		ScopeID:      r.ScopeID,
		EventName:    r.EventName,
		MatchID:      r.MatchID,
		PlayerName:   r.PlayerName,
		LegsPlayed:   r.LegsPlayed,
		LegsWon:      r.LegsWon,
		Average:      r.Average,
		Count180s:    r.Count180s,
		Count140Plus: r.Count140Plus,
		Count100Plus: r.Count100Plus,
		HighestScore: r.HighestScore,
		ProfileLink:  r.ProfileLink,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.FirstNineAverage = nullFloat64(r.FirstNineAverage)
	if c := r.Checkout; c != nil {
		m.CheckoutOpportunities = nullInt64(c.Opportunities)
		m.CheckoutHits = nullInt64(c.Hits)
		m.HighestCheckout = nullInt64(c.HighestCheckout)
		m.AverageFinish = nullFloat64(&c.AverageFinish)
		m.CheckoutEfficiency = sql.NullString{String: c.EfficiencyLabel, Valid: true}
	}
	return m
}

func (m playerMatchStatsTableModel) toDomain() matchstats.PlayerStatRecord {
	r := matchstats.PlayerStatRecord{
		Key: matchstats.Key{
			ScopeID:    m.ScopeID,
			EventName:  m.EventName,
			MatchID:    m.MatchID,
			PlayerName: m.PlayerName,
		},
		LegsPlayed:       m.LegsPlayed,
		LegsWon:          m.LegsWon,
		Average:          m.Average,
		FirstNineAverage: float64Ptr(m.FirstNineAverage),
		Count180s:        m.Count180s,
		Count140Plus:     m.Count140Plus,
		Count100Plus:     m.Count100Plus,
		HighestScore:     m.HighestScore,
		ProfileLink:      m.ProfileLink,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.CheckoutOpportunities.Valid {
		r.Checkout = &matchstats.CheckoutStats{
			Opportunities:   int(m.CheckoutOpportunities.Int64),
			Hits:            int(m.CheckoutHits.Int64),
			HighestCheckout: int(m.HighestCheckout.Int64),
			AverageFinish:   m.AverageFinish.Float64,
			EfficiencyLabel: m.CheckoutEfficiency.String,
		}
	}
	return r
}
