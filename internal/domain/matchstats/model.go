package matchstats

import "time"

// Key identifies exactly one persisted record.
type Key struct {
	ScopeID    string
	EventName  string
	MatchID    string
	PlayerName string
}

// MatchRef is the part of a Key shared by every player of one match.
type MatchRef struct {
	ScopeID   string
	EventName string
	MatchID   string
}

func (r MatchRef) For(playerName string) Key {
	return Key{
		ScopeID:    r.ScopeID,
		EventName:  r.EventName,
		MatchID:    r.MatchID,
		PlayerName: playerName,
	}
}

type RosterEntry struct {
	PlayerName  string
	GamesPlayed int
	GamesWon    int
	Average     float64
	ProfileLink string
}

// ScoreDistribution maps a round score ("180", "140", ...) to how many
// times the player hit it in the match.
type ScoreDistribution map[string]int

type CheckoutStats struct {
	Opportunities   int
	Hits            int
	HighestCheckout int
	AverageFinish   float64
	EfficiencyLabel string
}

// DistributionSet holds the per-player rows of the counts document, in
// roster order.
type DistributionSet struct {
	Distributions []ScoreDistribution
	FirstNine     []*float64
	Checkouts     []*CheckoutStats
}

// MatchPayload is everything fetched for one match. The three secondary
// slices are aligned with Roster by index and may be shorter than it.
type MatchPayload struct {
	Roster        []RosterEntry
	Distributions []ScoreDistribution
	FirstNine     []*float64
	Checkouts     []*CheckoutStats
}

func NewMatchPayload(roster []RosterEntry, set DistributionSet) MatchPayload {
	return MatchPayload{
		Roster:        roster,
		Distributions: set.Distributions,
		FirstNine:     set.FirstNine,
		Checkouts:     set.Checkouts,
	}
}

type PlayerStatRecord struct {
	Key

	LegsPlayed       int
	LegsWon          int
	Average          float64
	FirstNineAverage *float64
	Count180s        int
	Count140Plus     int
	Count100Plus     int
	HighestScore     int
	Checkout         *CheckoutStats
	ProfileLink      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HighestFinish is the best checkout of the record, 0 when none was taken.
func (r PlayerStatRecord) HighestFinish() int {
	if r.Checkout == nil {
		return 0
	}
	return r.Checkout.HighestCheckout
}

// Filter narrows a scope read. Empty fields match everything.
type Filter struct {
	EventName  string
	PlayerName string
}

func (f Filter) Match(r PlayerStatRecord) bool {
	if f.EventName != "" && r.EventName != f.EventName {
		return false
	}
	if f.PlayerName != "" && r.PlayerName != f.PlayerName {
		return false
	}
	return true
}
