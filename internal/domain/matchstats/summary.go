package matchstats

// RunSummary reports one scrape invocation. It is built fresh per run.
type RunSummary struct {
	TotalMatches int                    `json:"total_matches"`
	Successful   int                    `json:"successful"`
	Failed       int                    `json:"failed"`
	TotalPlayers int                    `json:"total_players"`
	Players      map[string]PlayerTally `json:"players"`
	Errors       []MatchError           `json:"errors,omitempty"`
}

type PlayerTally struct {
	MatchCount int `json:"match_count"`
	Count180s  int `json:"count_180s"`
}

type MatchError struct {
	MatchID string `json:"match_id"`
	Message string `json:"message"`
}

func NewRunSummary(totalMatches int) *RunSummary {
	return &RunSummary{
		TotalMatches: totalMatches,
		Players:      make(map[string]PlayerTally),
	}
}

// RecordSuccess tallies the records persisted for one match.
func (s *RunSummary) RecordSuccess(records []PlayerStatRecord) {
	s.Successful++
	s.tally(records)
}

// RecordFailure notes a failed match. Records that were persisted before
// the failure still count towards the player tallies.
func (s *RunSummary) RecordFailure(matchID string, err error, persisted []PlayerStatRecord) {
	s.Failed++
	s.Errors = append(s.Errors, MatchError{MatchID: matchID, Message: err.Error()})
	s.tally(persisted)
}

func (s *RunSummary) tally(records []PlayerStatRecord) {
	for _, r := range records {
		t := s.Players[r.PlayerName]
		t.MatchCount++
		t.Count180s += r.Count180s
		s.Players[r.PlayerName] = t
	}
	s.TotalPlayers = len(s.Players)
}
