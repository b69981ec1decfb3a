package qualification

import (
	"errors"
	"fmt"
	"time"
)

var ErrEventNumberOutOfRange = errors.New("event number out of range")

// Series describes how many events a season has and how many of them
// award a Tournament of Champions place to their winner.
type Series struct {
	QualifyingEvents int
	TotalEvents      int
}

func DefaultSeries() Series {
	return Series{QualifyingEvents: 6, TotalEvents: 7}
}

func (s Series) Validate(eventNumber int) error {
	if eventNumber < 1 || eventNumber > s.TotalEvents {
		return fmt.Errorf("%w: %d not in 1..%d", ErrEventNumberOutOfRange, eventNumber, s.TotalEvents)
	}
	return nil
}

func (s Series) IsQualifying(eventNumber int) bool {
	return eventNumber >= 1 && eventNumber <= s.QualifyingEvents
}

type EventWinner struct {
	ScopeID     string
	EventName   string
	EventNumber int
	PlayerName  string
	Qualifying  bool
	RecordedAt  time.Time
}

// QualifiedPlayers returns the set of players who won a qualifying event.
func QualifiedPlayers(winners []EventWinner) map[string]struct{} {
	out := make(map[string]struct{}, len(winners))
	for _, w := range winners {
		if w.Qualifying {
			out[w.PlayerName] = struct{}{}
		}
	}
	return out
}
