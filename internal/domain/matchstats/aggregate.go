package matchstats

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownSortKey = errors.New("unknown leaderboard sort key")

type SortKey string

const (
	SortByWeightedAverage SortKey = "weighted_average"
	SortByTotal180s       SortKey = "total_180s"
	SortByTotal140Plus    SortKey = "total_140_plus"
	SortByTotal100Plus    SortKey = "total_100_plus"
	SortByHighestFinish   SortKey = "highest_finish"
	SortByLegsPlayed      SortKey = "legs_played"
)

var sortKeys = map[SortKey]func(PlayerAggregate) float64{
	SortByWeightedAverage: func(a PlayerAggregate) float64 { return a.WeightedAverage },
	SortByTotal180s:       func(a PlayerAggregate) float64 { return float64(a.Total180s) },
	SortByTotal140Plus:    func(a PlayerAggregate) float64 { return float64(a.Total140Plus) },
	SortByTotal100Plus:    func(a PlayerAggregate) float64 { return float64(a.Total100Plus) },
	SortByHighestFinish:   func(a PlayerAggregate) float64 { return float64(a.HighestFinish) },
	SortByLegsPlayed:      func(a PlayerAggregate) float64 { return float64(a.LegsPlayed) },
}

// ParseSortKey maps an empty value to SortByWeightedAverage.
func ParseSortKey(raw string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if key == "" {
		return SortByWeightedAverage, nil
	}
	if _, ok := sortKeys[key]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSortKey, raw)
	}
	return key, nil
}

// PlayerAggregate is computed on every read and never stored.
type PlayerAggregate struct {
	PlayerName      string
	Rank            int
	WeightedAverage float64
	LegsPlayed      int
	LegsWon         int
	MatchesCounted  int
	Total180s       int
	Total140Plus    int
	Total100Plus    int
	HighestScore    int
	HighestFinish   int
	BestFirstNine   *float64
	EventsPlayed    []string
	EventWins       []string
	Qualified       bool
}

// QualifiedFunc reports whether a player holds a qualification. It is
// supplied by the caller; aggregation never derives it.
type QualifiedFunc func(playerName string) bool

type accumulator struct {
	agg         PlayerAggregate
	weightedSum float64
	events      map[string]struct{}
}

// Aggregate folds records into one aggregate per player name. The result
// is ordered by player name; use Rank to order it for display.
func Aggregate(records []PlayerStatRecord) []PlayerAggregate {
	byPlayer := make(map[string]*accumulator)
	for _, r := range records {
		acc, ok := byPlayer[r.PlayerName]
		if !ok {
			acc = &accumulator{
				agg:    PlayerAggregate{PlayerName: r.PlayerName},
				events: make(map[string]struct{}),
			}
			byPlayer[r.PlayerName] = acc
		}

		a := &acc.agg
		a.MatchesCounted++
		a.LegsPlayed += r.LegsPlayed
		a.LegsWon += r.LegsWon
		a.Total180s += r.Count180s
		a.Total140Plus += r.Count140Plus
		a.Total100Plus += r.Count100Plus
		a.HighestScore = max(a.HighestScore, r.HighestScore)
		a.HighestFinish = max(a.HighestFinish, r.HighestFinish())
		if r.FirstNineAverage != nil && (a.BestFirstNine == nil || *r.FirstNineAverage > *a.BestFirstNine) {
			v := *r.FirstNineAverage
			a.BestFirstNine = &v
		}
		acc.weightedSum += r.Average * float64(r.LegsPlayed)
		acc.events[r.EventName] = struct{}{}
	}

	out := make([]PlayerAggregate, 0, len(byPlayer))
	for _, acc := range byPlayer {
		a := acc.agg
		a.WeightedAverage = WeightedAverage(acc.weightedSum, a.LegsPlayed)
		a.EventsPlayed = make([]string, 0, len(acc.events))
		for name := range acc.events {
			a.EventsPlayed = append(a.EventsPlayed, name)
		}
		sort.Strings(a.EventsPlayed)
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerName < out[j].PlayerName })
	return out
}

// WeightedAverage returns sum(average*legs)/sum(legs), or 0 with no legs.
func WeightedAverage(weightedSum float64, legs int) float64 {
	if legs <= 0 {
		return 0
	}
	return weightedSum / float64(legs)
}

// Rank orders aggregates descending by key and numbers them from 1.
// Equal values fall back to more legs played, then player name ascending.
func Rank(aggregates []PlayerAggregate, key SortKey) {
	value, ok := sortKeys[key]
	if !ok {
		value = sortKeys[SortByWeightedAverage]
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		a, b := aggregates[i], aggregates[j]
		if va, vb := value(a), value(b); va != vb {
			return va > vb
		}
		if a.LegsPlayed != b.LegsPlayed {
			return a.LegsPlayed > b.LegsPlayed
		}
		return a.PlayerName < b.PlayerName
	})
	for i := range aggregates {
		aggregates[i].Rank = i + 1
	}
}

func ApplyQualification(aggregates []PlayerAggregate, qualified QualifiedFunc) {
	if qualified == nil {
		return
	}
	for i := range aggregates {
		aggregates[i].Qualified = qualified(aggregates[i].PlayerName)
	}
}
