package dartconnect

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/usecase"
)

var schemaValidator = validator.New(validator.WithRequiredStructEnabled())

// flexNumber accepts 12, 12.5, "12.5", "-" or "" and remembers whether a
// usable value was present.
type flexNumber struct {
	value float64
	set   bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		*n = flexNumber{}
		return nil
	}
	text = strings.Trim(text, `"`)
	text = strings.TrimSuffix(strings.TrimSpace(text), "%")
	if text == "" || text == "-" {
		*n = flexNumber{}
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", string(data))
	}
	*n = flexNumber{value: v, set: true}
	return nil
}

func (n flexNumber) Int() int { return int(n.value) }

func (n flexNumber) Ptr() *float64 {
	if !n.set {
		return nil
	}
	v := n.value
	return &v
}

// flexString accepts a JSON string or number, the match id field uses both.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		*s = ""
		return nil
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		*s = flexString(strings.TrimSpace(unquoted))
		return nil
	}
	*s = flexString(text)
	return nil
}

type inertiaPage[P any] struct {
	Component string `json:"component"`
	Props     P      `json:"props" validate:"required"`
}

type rosterProps struct {
	Players []rosterRow `json:"players" validate:"required,min=1,dive"`
}

type rosterRow struct {
	Name       string     `json:"name" validate:"required"`
	TotalGames flexNumber `json:"total_games"`
	TotalWins  flexNumber `json:"total_wins"`
	Average    flexNumber `json:"average"`
	CardLink   string     `json:"card_link"`
}

// Secondary rows stay raw so one malformed row degrades to an empty value
// instead of failing the match.
type countsProps struct {
	Distribution  []json.RawMessage `json:"distribution" validate:"required"`
	FirstNine     []json.RawMessage `json:"first_nine"`
	CheckoutStats []json.RawMessage `json:"checkout_stats"`
}

type firstNineRow struct {
	Average flexNumber `json:"average"`
}

// checkoutRow maps to nil unless opportunities carries a value.
type checkoutRow struct {
	Efficiency    flexString `json:"efficiency"`
	Opportunities flexNumber `json:"opportunities"`
	Hit           flexNumber `json:"hit"`
	Highest       flexNumber `json:"highest"`
	Average       flexNumber `json:"average"`
}

func decodePage[P any](raw []byte, target *inertiaPage[P]) error {
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode data-page: %v", usecase.ErrParse, err)
	}
	if err := schemaValidator.Struct(target); err != nil {
		return fmt.Errorf("%w: data-page schema: %v", usecase.ErrParse, err)
	}
	return nil
}

func (p rosterProps) toDomain() []matchstats.RosterEntry {
	out := make([]matchstats.RosterEntry, 0, len(p.Players))
	for _, row := range p.Players {
		out = append(out, matchstats.RosterEntry{
			PlayerName:  strings.TrimSpace(row.Name),
			GamesPlayed: row.TotalGames.Int(),
			GamesWon:    row.TotalWins.Int(),
			Average:     row.Average.value,
			ProfileLink: strings.TrimSpace(row.CardLink),
		})
	}
	return out
}

func (p countsProps) toDomain() matchstats.DistributionSet {
	set := matchstats.DistributionSet{
		Distributions: make([]matchstats.ScoreDistribution, len(p.Distribution)),
		FirstNine:     make([]*float64, len(p.FirstNine)),
		Checkouts:     make([]*matchstats.CheckoutStats, len(p.CheckoutStats)),
	}

	for i, raw := range p.Distribution {
		set.Distributions[i] = decodeDistribution(raw)
	}
	for i, raw := range p.FirstNine {
		var row firstNineRow
		if sonic.Unmarshal(raw, &row) == nil {
			set.FirstNine[i] = row.Average.Ptr()
		}
	}
	for i, raw := range p.CheckoutStats {
		var row *checkoutRow
		if sonic.Unmarshal(raw, &row) != nil || row == nil || !row.Opportunities.set {
			continue
		}
		set.Checkouts[i] = &matchstats.CheckoutStats{
			Opportunities:   row.Opportunities.Int(),
			Hits:            row.Hit.Int(),
			HighestCheckout: row.Highest.Int(),
			AverageFinish:   row.Average.value,
			EfficiencyLabel: string(row.Efficiency),
		}
	}
	return set
}

// decodeDistribution reads one score to count map. An empty map may be
// published as [], which decodes to an empty distribution.
func decodeDistribution(raw []byte) matchstats.ScoreDistribution {
	var counts map[string]flexNumber
	if err := sonic.Unmarshal(raw, &counts); err != nil {
		return matchstats.ScoreDistribution{}
	}

	dist := make(matchstats.ScoreDistribution, len(counts))
	for score, count := range counts {
		if count.set {
			dist[strings.TrimSpace(score)] = count.Int()
		}
	}
	return dist
}
