package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/domain/qualification"
	"github.com/riskibarqy/darts-league/internal/platform/logging"
)

type SetWinnerInput struct {
	ActorID     string
	ScopeID     string
	EventName   string
	EventNumber int
	PlayerName  string
}

// QualificationService records event winners. Winning a qualifying event
// earns a Tournament of Champions place.
type QualificationService struct {
	authorizer  ScopeAuthorizer
	stats       matchstats.Repository
	winners     qualification.Repository
	aggregation *AggregationService
	series      qualification.Series
	logger      *logging.Logger
	now         func() time.Time
}

func NewQualificationService(
	authorizer ScopeAuthorizer,
	stats matchstats.Repository,
	winners qualification.Repository,
	aggregation *AggregationService,
	series qualification.Series,
	logger *logging.Logger,
) *QualificationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &QualificationService{
		authorizer:  authorizer,
		stats:       stats,
		winners:     winners,
		aggregation: aggregation,
		series:      series,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *QualificationService) SetWinner(ctx context.Context, in SetWinnerInput) (qualification.EventWinner, error) {
	in.ScopeID = strings.TrimSpace(in.ScopeID)
	in.EventName = strings.TrimSpace(in.EventName)
	in.PlayerName = strings.TrimSpace(in.PlayerName)
	if in.ScopeID == "" || in.EventName == "" || in.PlayerName == "" {
		return qualification.EventWinner{}, fmt.Errorf("%w: scope id, event name and player name are required", ErrInvalidInput)
	}
	if err := s.series.Validate(in.EventNumber); err != nil {
		return qualification.EventWinner{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.QualificationService.SetWinner")
	defer span.End()

	if s.authorizer == nil {
		return qualification.EventWinner{}, fmt.Errorf("%w: scope authorizer is not configured", ErrUnauthorized)
	}
	if err := s.authorizer.AuthorizeScope(ctx, in.ActorID, in.ScopeID); err != nil {
		return qualification.EventWinner{}, err
	}

	records, err := s.stats.ListByScope(ctx, in.ScopeID, matchstats.Filter{PlayerName: in.PlayerName})
	if err != nil {
		return qualification.EventWinner{}, fmt.Errorf("lookup player records: %w", err)
	}
	if len(records) == 0 {
		return qualification.EventWinner{}, fmt.Errorf("%w: player=%s has no stats in scope=%s", ErrNotFound, in.PlayerName, in.ScopeID)
	}

	winner := qualification.EventWinner{
		ScopeID:     in.ScopeID,
		EventName:   in.EventName,
		EventNumber: in.EventNumber,
		PlayerName:  in.PlayerName,
		Qualifying:  s.series.IsQualifying(in.EventNumber),
		RecordedAt:  s.now().UTC(),
	}
	if err := s.winners.UpsertWinner(ctx, winner); err != nil {
		return qualification.EventWinner{}, fmt.Errorf("%w: save event winner: %v", ErrPersistence, err)
	}

	s.logger.InfoContext(ctx, "event winner recorded",
		"scope_id", winner.ScopeID,
		"event_name", winner.EventName,
		"event_number", winner.EventNumber,
		"player_name", winner.PlayerName,
		"qualifying", winner.Qualifying,
	)
	return winner, nil
}

// ListQualified returns the leaderboard restricted to qualified players.
func (s *QualificationService) ListQualified(ctx context.Context, scopeID string) ([]matchstats.PlayerAggregate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QualificationService.ListQualified")
	defer span.End()

	lookup, err := s.QualificationLookup(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	board, err := s.aggregation.Leaderboard(ctx, LeaderboardQuery{ScopeID: scopeID, Qualified: lookup})
	if err != nil {
		return nil, err
	}

	out := make([]matchstats.PlayerAggregate, 0, len(board))
	for _, a := range board {
		if a.Qualified {
			a.Rank = len(out) + 1
			out = append(out, a)
		}
	}
	return out, nil
}

// QualificationLookup builds the player to qualified hook for scopeID.
func (s *QualificationService) QualificationLookup(ctx context.Context, scopeID string) (matchstats.QualifiedFunc, error) {
	winners, err := s.winners.ListWinners(ctx, strings.TrimSpace(scopeID))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("list event winners: %w", err)
	}
	return qualifiedLookup(winners), nil
}
