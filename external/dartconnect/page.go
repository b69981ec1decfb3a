package dartconnect

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/usecase"
)

// The recap site is an Inertia app: the page state is serialized into the
// data-page attribute of the root element.
const pageStateSelector = "div#app[data-page]"

func (c *Client) FetchRoster(ctx context.Context, matchID string) ([]matchstats.RosterEntry, error) {
	var page inertiaPage[rosterProps]
	if err := fetchPage(ctx, c, "players", matchID, &page); err != nil {
		return nil, err
	}
	return page.Props.toDomain(), nil
}

func (c *Client) FetchDistribution(ctx context.Context, matchID string) (matchstats.DistributionSet, error) {
	var page inertiaPage[countsProps]
	if err := fetchPage(ctx, c, "counts", matchID, &page); err != nil {
		return matchstats.DistributionSet{}, err
	}
	return page.Props.toDomain(), nil
}

func fetchPage[P any](ctx context.Context, c *Client, section, matchID string, target *inertiaPage[P]) error {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", usecase.ErrInvalidInput)
	}

	req := request{
		method:  http.MethodGet,
		url:     c.recapBaseURL + "/" + section + "/" + url.PathEscape(matchID),
		accept:  "text/html,application/xhtml+xml",
		referer: c.recapBaseURL + "/matches/" + url.PathEscape(matchID),
	}
	err := c.do(ctx, req, func(body []byte) error {
		state, err := extractPageState(body)
		if err != nil {
			return err
		}
		return decodePage([]byte(state), target)
	})
	if err != nil {
		return fmt.Errorf("%s page match=%s: %w", section, matchID, err)
	}
	return nil
}

// extractPageState returns the unescaped data-page attribute of the
// document, or ErrParse when the element is missing or empty.
func extractPageState(document []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(document))
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", usecase.ErrParse, err)
	}

	state, ok := doc.Find(pageStateSelector).First().Attr("data-page")
	if !ok || strings.TrimSpace(state) == "" {
		return "", fmt.Errorf("%w: data-page attribute missing", usecase.ErrParse)
	}
	return state, nil
}
