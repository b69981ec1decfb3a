package httpapi

import (
	"context"
	"math"
	"time"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/domain/qualification"
	"github.com/riskibarqy/darts-league/internal/domain/scrapejob"
	"github.com/riskibarqy/darts-league/internal/usecase"
)

type playerAggregateDTO struct {
	Rank            int      `json:"rank"`
	PlayerName      string   `json:"player_name"`
	WeightedAverage float64  `json:"weighted_average"`
	LegsPlayed      int      `json:"legs_played"`
	LegsWon         int      `json:"legs_won"`
	MatchesCounted  int      `json:"matches_counted"`
	Total180s       int      `json:"total_180s"`
	Total140Plus    int      `json:"total_140_plus"`
	Total100Plus    int      `json:"total_100_plus"`
	HighestScore    int      `json:"highest_score"`
	HighestFinish   int      `json:"highest_finish"`
	BestFirstNine   *float64 `json:"best_first_nine"`
	EventsPlayed    []string `json:"events_played"`
	EventWins       []string `json:"event_wins"`
	Qualified       bool     `json:"qualified"`
}

type checkoutDTO struct {
	Opportunities   int     `json:"opportunities"`
	Hits            int     `json:"hits"`
	HighestCheckout int     `json:"highest_checkout"`
	AverageFinish   float64 `json:"average_finish"`
	Efficiency      string  `json:"efficiency"`
}

type matchRecordDTO struct {
	EventName        string       `json:"event_name"`
	MatchID          string       `json:"match_id"`
	LegsPlayed       int          `json:"legs_played"`
	LegsWon          int          `json:"legs_won"`
	Average          float64      `json:"average"`
	FirstNineAverage *float64     `json:"first_nine_average"`
	Count180s        int          `json:"count_180s"`
	Count140Plus     int          `json:"count_140_plus"`
	Count100Plus     int          `json:"count_100_plus"`
	HighestScore     int          `json:"highest_score"`
	Checkout         *checkoutDTO `json:"checkout"`
	ProfileLink      string       `json:"profile_link,omitempty"`
	UpdatedAtUTC     string       `json:"updated_at_utc"`
}

type playerSummaryDTO struct {
	Aggregate playerAggregateDTO `json:"aggregate"`
	History   []matchRecordDTO   `json:"history"`
}

type eventSummaryDTO struct {
	EventName    string `json:"event_name"`
	Participants int    `json:"participants"`
	Matches      int    `json:"matches"`
	Winner       string `json:"winner,omitempty"`
	EventNumber  int    `json:"event_number,omitempty"`
	Qualifying   bool   `json:"qualifying"`
}

type eventWinnerDTO struct {
	ScopeID       string `json:"scope_id"`
	EventName     string `json:"event_name"`
	EventNumber   int    `json:"event_number"`
	PlayerName    string `json:"player_name"`
	Qualifying    bool   `json:"qualifying"`
	RecordedAtUTC string `json:"recorded_at_utc"`
}

type scrapeJobDTO struct {
	ID             string                 `json:"id"`
	ScopeID        string                 `json:"scope_id"`
	EventName      string                 `json:"event_name"`
	EventReference string                 `json:"event_reference"`
	Status         string                 `json:"status"`
	CurrentMatch   int                    `json:"current_match"`
	TotalMatches   int                    `json:"total_matches"`
	Summary        *matchstats.RunSummary `json:"summary,omitempty"`
	Error          string                 `json:"error,omitempty"`
	CreatedAtUTC   string                 `json:"created_at_utc"`
	UpdatedAtUTC   string                 `json:"updated_at_utc"`
}

func aggregatesToDTO(ctx context.Context, items []matchstats.PlayerAggregate) []playerAggregateDTO {
	ctx, span := startSpan(ctx, "httpapi.aggregatesToDTO")
	defer span.End()

	out := make([]playerAggregateDTO, 0, len(items))
	for _, item := range items {
		out = append(out, aggregateToDTO(item))
	}
	return out
}

func aggregateToDTO(v matchstats.PlayerAggregate) playerAggregateDTO {
	return playerAggregateDTO{
		Rank:            v.Rank,
		PlayerName:      v.PlayerName,
		WeightedAverage: round2(v.WeightedAverage),
		LegsPlayed:      v.LegsPlayed,
		LegsWon:         v.LegsWon,
		MatchesCounted:  v.MatchesCounted,
		Total180s:       v.Total180s,
		Total140Plus:    v.Total140Plus,
		Total100Plus:    v.Total100Plus,
		HighestScore:    v.HighestScore,
		HighestFinish:   v.HighestFinish,
		BestFirstNine:   v.BestFirstNine,
		EventsPlayed:    nonNilStrings(v.EventsPlayed),
		EventWins:       nonNilStrings(v.EventWins),
		Qualified:       v.Qualified,
	}
}

func playerSummaryToDTO(ctx context.Context, v usecase.PlayerSummary) playerSummaryDTO {
	ctx, span := startSpan(ctx, "httpapi.playerSummaryToDTO")
	defer span.End()

	history := make([]matchRecordDTO, 0, len(v.History))
	for _, r := range v.History {
		history = append(history, matchRecordToDTO(r))
	}
	return playerSummaryDTO{
		Aggregate: aggregateToDTO(v.Aggregate),
		History:   history,
	}
}

func matchRecordToDTO(r matchstats.PlayerStatRecord) matchRecordDTO {
	out := matchRecordDTO{
		EventName:        r.EventName,
		MatchID:          r.MatchID,
		LegsPlayed:       r.LegsPlayed,
		LegsWon:          r.LegsWon,
		Average:          r.Average,
		FirstNineAverage: r.FirstNineAverage,
		Count180s:        r.Count180s,
		Count140Plus:     r.Count140Plus,
		Count100Plus:     r.Count100Plus,
		HighestScore:     r.HighestScore,
		ProfileLink:      r.ProfileLink,
		UpdatedAtUTC:     formatTime(r.UpdatedAt),
	}
	if r.Checkout != nil {
		out.Checkout = &checkoutDTO{
			Opportunities:   r.Checkout.Opportunities,
			Hits:            r.Checkout.Hits,
			HighestCheckout: r.Checkout.HighestCheckout,
			AverageFinish:   r.Checkout.AverageFinish,
			Efficiency:      r.Checkout.EfficiencyLabel,
		}
	}
	return out
}

func eventSummaryToDTO(v usecase.EventSummary) eventSummaryDTO {
	return eventSummaryDTO{
		EventName:    v.EventName,
		Participants: v.Participants,
		Matches:      v.Matches,
		Winner:       v.Winner,
		EventNumber:  v.EventNumber,
		Qualifying:   v.Qualifying,
	}
}

func eventWinnerToDTO(v qualification.EventWinner) eventWinnerDTO {
	return eventWinnerDTO{
		ScopeID:       v.ScopeID,
		EventName:     v.EventName,
		EventNumber:   v.EventNumber,
		PlayerName:    v.PlayerName,
		Qualifying:    v.Qualifying,
		RecordedAtUTC: formatTime(v.RecordedAt),
	}
}

func scrapeJobToDTO(ctx context.Context, v scrapejob.Job) scrapeJobDTO {
	ctx, span := startSpan(ctx, "httpapi.scrapeJobToDTO")
	defer span.End()

	return scrapeJobDTO{
		ID:             v.ID,
		ScopeID:        v.ScopeID,
		EventName:      v.EventName,
		EventReference: v.EventReference,
		Status:         string(v.Status),
		CurrentMatch:   v.CurrentMatch,
		TotalMatches:   v.TotalMatches,
		Summary:        v.Summary,
		Error:          v.Error,
		CreatedAtUTC:   formatTime(v.CreatedAt),
		UpdatedAtUTC:   formatTime(v.UpdatedAt),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
