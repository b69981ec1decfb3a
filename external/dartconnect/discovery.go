package dartconnect

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/darts-league/internal/usecase"
)

// DiscoverMatches lists the match ids of an event in the order the TV api
// publishes them. Repeated ids keep their first position.
func (c *Client) DiscoverMatches(ctx context.Context, eventToken string) ([]string, error) {
	eventToken = strings.TrimSpace(eventToken)
	if eventToken == "" {
		return nil, fmt.Errorf("%w: event token is required", usecase.ErrInvalidReference)
	}

	escaped := url.PathEscape(eventToken)
	req := request{
		method:  http.MethodPost,
		url:     c.tvBaseURL + "/api2/event/" + escaped + "/matches",
		body:    []byte("{}"),
		accept:  "application/json",
		referer: c.tvBaseURL + "/event/" + escaped,
	}

	var ids []string
	err := c.do(ctx, req, func(body []byte) error {
		parsed, err := parseDiscovery(body)
		ids = parsed
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("discover event=%s: %w", eventToken, err)
	}
	return ids, nil
}

// parseDiscovery walks payload sections in document order. A section is
// either a list of segments or an object holding a "segments" list; each
// segment contributes its "mi" field, else its "id" field.
func parseDiscovery(body []byte) ([]string, error) {
	iter := jsoniter.ConfigFastest.BorrowIterator(body)
	defer jsoniter.ConfigFastest.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, fmt.Errorf("%w: discovery response is not an object", usecase.ErrParse)
	}

	collected := newOrderedSet()
	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		if field != "payload" || it.WhatIsNext() != jsoniter.ObjectValue {
			it.Skip()
			return true
		}
		it.ReadObjectCB(func(it *jsoniter.Iterator, _ string) bool {
			readSection(it, collected.add)
			return true
		})
		return true
	})
	if iter.Error != nil && !stderrors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("%w: decode discovery response: %v", usecase.ErrParse, iter.Error)
	}
	return collected.items, nil
}

func readSection(it *jsoniter.Iterator, add func(string)) {
	switch it.WhatIsNext() {
	case jsoniter.ArrayValue:
		readSegments(it, add)
	case jsoniter.ObjectValue:
		it.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			if field == "segments" && it.WhatIsNext() == jsoniter.ArrayValue {
				readSegments(it, add)
				return true
			}
			it.Skip()
			return true
		})
	default:
		it.Skip()
	}
}

func readSegments(it *jsoniter.Iterator, add func(string)) {
	it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		if it.WhatIsNext() != jsoniter.ObjectValue {
			it.Skip()
			return true
		}

		var matchID, segmentID string
		it.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			switch field {
			case "mi":
				matchID = readIdentifier(it)
			case "id":
				segmentID = readIdentifier(it)
			default:
				it.Skip()
			}
			return true
		})
		add(firstNonEmpty(matchID, segmentID))
		return true
	})
}

func readIdentifier(it *jsoniter.Iterator) string {
	switch it.WhatIsNext() {
	case jsoniter.StringValue:
		return strings.TrimSpace(it.ReadString())
	case jsoniter.NumberValue:
		return it.ReadNumber().String()
	default:
		it.Skip()
		return ""
	}
}

type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{items: []string{}, seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
