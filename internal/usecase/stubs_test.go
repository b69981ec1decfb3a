package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
)

type stubDiscovery struct {
	ids   []string
	err   error
	calls int
}

func (s *stubDiscovery) DiscoverMatches(_ context.Context, _ string) ([]string, error) {
	s.calls++
	return s.ids, s.err
}

// stubStatsSource serves fixed payloads per match id and counts calls.
type stubStatsSource struct {
	mu          sync.Mutex
	rosters     map[string][]matchstats.RosterEntry
	sets        map[string]matchstats.DistributionSet
	rosterErr   map[string]error
	distErr     map[string]error
	rosterCalls int
	distCalls   int
}

func newStubStatsSource() *stubStatsSource {
	return &stubStatsSource{
		rosters:   map[string][]matchstats.RosterEntry{},
		sets:      map[string]matchstats.DistributionSet{},
		rosterErr: map[string]error{},
		distErr:   map[string]error{},
	}
}

func (s *stubStatsSource) add(matchID string, players ...string) {
	roster := make([]matchstats.RosterEntry, 0, len(players))
	dists := make([]matchstats.ScoreDistribution, 0, len(players))
	for i, name := range players {
		roster = append(roster, matchstats.RosterEntry{PlayerName: name, GamesPlayed: 5, GamesWon: i % 2, Average: 80 + float64(i)})
		dists = append(dists, matchstats.ScoreDistribution{"180": 1, "100": 2})
	}
	s.rosters[matchID] = roster
	s.sets[matchID] = matchstats.DistributionSet{Distributions: dists}
}

func (s *stubStatsSource) FetchRoster(_ context.Context, matchID string) ([]matchstats.RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosterCalls++
	if err := s.rosterErr[matchID]; err != nil {
		return nil, err
	}
	roster, ok := s.rosters[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown match %s", ErrFetch, matchID)
	}
	return roster, nil
}

func (s *stubStatsSource) FetchDistribution(_ context.Context, matchID string) (matchstats.DistributionSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distCalls++
	if err := s.distErr[matchID]; err != nil {
		return matchstats.DistributionSet{}, err
	}
	return s.sets[matchID], nil
}

type fixedIDs struct{ next int }

func (g *fixedIDs) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}
