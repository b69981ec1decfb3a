package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/sourcegraph/conc/pool"
)

type MatchStatsFetcher struct {
	source MatchStatsSource
}

func NewMatchStatsFetcher(source MatchStatsSource) *MatchStatsFetcher {
	return &MatchStatsFetcher{source: source}
}

// Fetch retrieves roster and distribution concurrently. Either failure
// fails the whole match and cancels the other request.
func (f *MatchStatsFetcher) Fetch(ctx context.Context, matchID string) (matchstats.MatchPayload, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchStatsFetcher.Fetch")
	defer span.End()

	var (
		roster []matchstats.RosterEntry
		set    matchstats.DistributionSet
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		out, err := f.source.FetchRoster(ctx, matchID)
		if err != nil {
			return fmt.Errorf("roster: %w", err)
		}
		roster = out
		return nil
	})
	p.Go(func(ctx context.Context) error {
		out, err := f.source.FetchDistribution(ctx, matchID)
		if err != nil {
			return fmt.Errorf("distribution: %w", err)
		}
		set = out
		return nil
	})
	if err := p.Wait(); err != nil {
		span.RecordError(err)
		return matchstats.MatchPayload{}, fmt.Errorf("fetch match=%s: %w", matchID, err)
	}

	if name, dup := matchstats.DuplicateRosterName(roster); dup {
		err := fmt.Errorf("fetch match=%s: %w: player %q listed twice in roster", matchID, ErrParse, name)
		span.RecordError(err)
		return matchstats.MatchPayload{}, err
	}

	return matchstats.NewMatchPayload(roster, set), nil
}
