package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/platform/id"
	"github.com/riskibarqy/darts-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/ratelimit"
)

type ScrapeConfig struct {
	// MatchDelay spaces consecutive matches. Zero disables pacing.
	MatchDelay time.Duration
}

type ScrapeInput struct {
	ActorID        string
	ScopeID        string
	EventReference string
	// EventName labels the stored records. Defaults to the event token.
	EventName string
	// Progress, when set, is called once after discovery with done=0 and
	// after every processed match.
	Progress func(done, total int)
}

// ScrapeService runs one event end to end: discovery, then fetch, build
// and persist for each match in order.
type ScrapeService struct {
	authorizer ScopeAuthorizer
	discoverer *EventMatchDiscoverer
	fetcher    *MatchStatsFetcher
	upserter   *StatUpserter
	ids        id.Generator
	cfg        ScrapeConfig
	logger     *logging.Logger
}

func NewScrapeService(
	authorizer ScopeAuthorizer,
	discoverer *EventMatchDiscoverer,
	fetcher *MatchStatsFetcher,
	upserter *StatUpserter,
	ids id.Generator,
	cfg ScrapeConfig,
	logger *logging.Logger,
) *ScrapeService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewTimeOrderedGenerator()
	}
	return &ScrapeService{
		authorizer: authorizer,
		discoverer: discoverer,
		fetcher:    fetcher,
		upserter:   upserter,
		ids:        ids,
		cfg:        cfg,
		logger:     logger,
	}
}

// Scrape returns an error only for failures that stop the run before any
// match is fetched, or when ctx ends mid-run. In the latter case the
// partial summary is returned alongside the error.
func (s *ScrapeService) Scrape(ctx context.Context, in ScrapeInput) (*matchstats.RunSummary, error) {
	scopeID := strings.TrimSpace(in.ScopeID)
	if scopeID == "" {
		return nil, fmt.Errorf("%w: scope id is required", ErrInvalidInput)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.ScrapeService.Scrape", attribute.String("scope.id", scopeID))
	defer span.End()

	if s.authorizer == nil {
		return nil, fmt.Errorf("%w: scope authorizer is not configured", ErrUnauthorized)
	}
	if err := s.authorizer.AuthorizeScope(ctx, in.ActorID, scopeID); err != nil {
		return nil, err
	}

	token, matchIDs, err := s.discoverer.Discover(ctx, in.EventReference)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	eventName := strings.TrimSpace(in.EventName)
	if eventName == "" {
		eventName = token
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}
	logger := s.logger.With("run_id", runID, "scope_id", scopeID, "event_name", eventName)
	logger.InfoContext(ctx, "scrape started", "event_token", token, "total_matches", len(matchIDs))

	summary := matchstats.NewRunSummary(len(matchIDs))
	progress := in.Progress
	if progress == nil {
		progress = func(int, int) {}
	}
	progress(0, len(matchIDs))

	limiter := s.limiter()
	for i, matchID := range matchIDs {
		if err := ctx.Err(); err != nil {
			logger.WarnContext(ctx, "scrape truncated", "processed", i, "total_matches", len(matchIDs))
			return summary, fmt.Errorf("scrape truncated after %d of %d matches: %w", i, len(matchIDs), err)
		}
		limiter.Take()

		ref := matchstats.MatchRef{ScopeID: scopeID, EventName: eventName, MatchID: matchID}
		stored, err := s.processMatch(ctx, ref)
		if err != nil {
			summary.RecordFailure(matchID, err, stored)
			logger.WarnContext(ctx, "match failed", "match_id", matchID, "error", err)
		} else {
			summary.RecordSuccess(stored)
			logger.DebugContext(ctx, "match stored", "match_id", matchID, "players", len(stored))
		}
		progress(i+1, len(matchIDs))
	}

	span.SetAttributes(
		attribute.Int("scrape.successful", summary.Successful),
		attribute.Int("scrape.failed", summary.Failed),
	)
	logger.InfoContext(ctx, "scrape finished",
		"successful", summary.Successful,
		"failed", summary.Failed,
		"total_players", summary.TotalPlayers,
	)
	return summary, nil
}

func (s *ScrapeService) processMatch(ctx context.Context, ref matchstats.MatchRef) ([]matchstats.PlayerStatRecord, error) {
	payload, err := s.fetcher.Fetch(ctx, ref.MatchID)
	if err != nil {
		return nil, err
	}
	records := matchstats.BuildRecords(ref, payload)
	return s.upserter.UpsertAll(ctx, records)
}

func (s *ScrapeService) limiter() ratelimit.Limiter {
	if s.cfg.MatchDelay <= 0 {
		return ratelimit.NewUnlimited()
	}
	return ratelimit.New(1, ratelimit.Per(s.cfg.MatchDelay), ratelimit.WithoutSlack)
}
