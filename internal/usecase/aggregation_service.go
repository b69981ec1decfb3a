package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/domain/qualification"
	"go.opentelemetry.io/otel/attribute"
)

type LeaderboardQuery struct {
	ScopeID   string
	EventName string
	SortBy    string
	Limit     int
	// Qualified overrides the lookup built from the scope's event winners.
	Qualified matchstats.QualifiedFunc
}

type PlayerSummary struct {
	Aggregate matchstats.PlayerAggregate
	History   []matchstats.PlayerStatRecord
}

type EventSummary struct {
	EventName    string
	Participants int
	Matches      int
	Winner       string
	EventNumber  int
	Qualifying   bool
}

// AggregationService reads persisted records and derives rankings. It
// never writes.
type AggregationService struct {
	stats   matchstats.Repository
	winners qualification.Repository
}

func NewAggregationService(stats matchstats.Repository, winners qualification.Repository) *AggregationService {
	return &AggregationService{stats: stats, winners: winners}
}

func (s *AggregationService) Leaderboard(ctx context.Context, q LeaderboardQuery) ([]matchstats.PlayerAggregate, error) {
	scopeID := strings.TrimSpace(q.ScopeID)
	if scopeID == "" {
		return nil, fmt.Errorf("%w: scope id is required", ErrInvalidInput)
	}
	sortKey, err := matchstats.ParseSortKey(q.SortBy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if q.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.Leaderboard",
		attribute.String("scope.id", scopeID),
		attribute.String("leaderboard.sort_by", string(sortKey)),
	)
	defer span.End()

	records, err := s.stats.ListByScope(ctx, scopeID, matchstats.Filter{EventName: strings.TrimSpace(q.EventName)})
	if err != nil {
		return nil, fmt.Errorf("list stat records: %w", err)
	}

	aggregates := matchstats.Aggregate(records)
	if err := s.decorate(ctx, scopeID, aggregates, q.Qualified); err != nil {
		return nil, err
	}
	matchstats.Rank(aggregates, sortKey)

	if q.Limit > 0 && len(aggregates) > q.Limit {
		aggregates = aggregates[:q.Limit]
	}
	return aggregates, nil
}

func (s *AggregationService) PlayerSummary(ctx context.Context, scopeID, playerName string) (PlayerSummary, error) {
	scopeID = strings.TrimSpace(scopeID)
	playerName = strings.TrimSpace(playerName)
	if scopeID == "" || playerName == "" {
		return PlayerSummary{}, fmt.Errorf("%w: scope id and player name are required", ErrInvalidInput)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.PlayerSummary")
	defer span.End()

	records, err := s.stats.ListByScope(ctx, scopeID, matchstats.Filter{PlayerName: playerName})
	if err != nil {
		return PlayerSummary{}, fmt.Errorf("list player records: %w", err)
	}
	if len(records) == 0 {
		return PlayerSummary{}, fmt.Errorf("%w: player=%s scope=%s", ErrNotFound, playerName, scopeID)
	}

	aggregates := matchstats.Aggregate(records)
	if err := s.decorate(ctx, scopeID, aggregates, nil); err != nil {
		return PlayerSummary{}, err
	}
	aggregates[0].Rank = 0

	history := append([]matchstats.PlayerStatRecord(nil), records...)
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].EventName != history[j].EventName {
			return history[i].EventName < history[j].EventName
		}
		return history[i].MatchID < history[j].MatchID
	})

	return PlayerSummary{Aggregate: aggregates[0], History: history}, nil
}

func (s *AggregationService) ListEvents(ctx context.Context, scopeID string) ([]EventSummary, error) {
	scopeID = strings.TrimSpace(scopeID)
	if scopeID == "" {
		return nil, fmt.Errorf("%w: scope id is required", ErrInvalidInput)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.ListEvents")
	defer span.End()

	records, err := s.stats.ListByScope(ctx, scopeID, matchstats.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list stat records: %w", err)
	}
	winners, err := s.listWinners(ctx, scopeID)
	if err != nil {
		return nil, err
	}

	type eventSets struct {
		players map[string]struct{}
		matches map[string]struct{}
	}
	byEvent := make(map[string]*eventSets)
	for _, r := range records {
		sets, ok := byEvent[r.EventName]
		if !ok {
			sets = &eventSets{players: map[string]struct{}{}, matches: map[string]struct{}{}}
			byEvent[r.EventName] = sets
		}
		sets.players[r.PlayerName] = struct{}{}
		sets.matches[r.MatchID] = struct{}{}
	}

	winnerByEvent := make(map[string]qualification.EventWinner, len(winners))
	for _, w := range winners {
		winnerByEvent[w.EventName] = w
	}

	out := make([]EventSummary, 0, len(byEvent))
	for name, sets := range byEvent {
		item := EventSummary{
			EventName:    name,
			Participants: len(sets.players),
			Matches:      len(sets.matches),
		}
		if w, ok := winnerByEvent[name]; ok {
			item.Winner = w.PlayerName
			item.EventNumber = w.EventNumber
			item.Qualifying = w.Qualifying
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventName < out[j].EventName })
	return out, nil
}

// decorate fills the winner-derived fields that records alone cannot give.
// A nil qualified falls back to the scope's qualifying winners.
func (s *AggregationService) decorate(ctx context.Context, scopeID string, aggregates []matchstats.PlayerAggregate, qualified matchstats.QualifiedFunc) error {
	winners, err := s.listWinners(ctx, scopeID)
	if err != nil {
		return err
	}

	wins := make(map[string][]string)
	for _, w := range winners {
		wins[w.PlayerName] = append(wins[w.PlayerName], w.EventName)
	}
	for i := range aggregates {
		if events, ok := wins[aggregates[i].PlayerName]; ok {
			sort.Strings(events)
			aggregates[i].EventWins = events
		}
	}

	if qualified == nil {
		qualified = qualifiedLookup(winners)
	}
	matchstats.ApplyQualification(aggregates, qualified)
	return nil
}

func qualifiedLookup(winners []qualification.EventWinner) matchstats.QualifiedFunc {
	qualified := qualification.QualifiedPlayers(winners)
	return func(name string) bool {
		_, ok := qualified[name]
		return ok
	}
}

func (s *AggregationService) listWinners(ctx context.Context, scopeID string) ([]qualification.EventWinner, error) {
	if s.winners == nil {
		return nil, nil
	}
	winners, err := s.winners.ListWinners(ctx, scopeID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("list event winners: %w", err)
	}
	return winners, nil
}
