package usecase

import (
	"context"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
)

// MatchDiscoverySource lists the match identifiers of one event token in
// the order the upstream publishes them.
type MatchDiscoverySource interface {
	DiscoverMatches(ctx context.Context, eventToken string) ([]string, error)
}

// MatchStatsSource retrieves the two documents published for one match.
// Implementations wrap failures in ErrFetch or ErrParse.
type MatchStatsSource interface {
	FetchRoster(ctx context.Context, matchID string) ([]matchstats.RosterEntry, error)
	FetchDistribution(ctx context.Context, matchID string) (matchstats.DistributionSet, error)
}
