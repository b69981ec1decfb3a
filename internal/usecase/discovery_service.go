package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

var eventTokenPattern = regexp.MustCompile(`(?:^|/)event/([A-Za-z0-9_]+)`)

// ParseEventReference extracts the event token from a reference such as
// https://tv.dartconnect.com/event/mt_joe6163l_1.
func ParseEventReference(reference string) (string, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return "", fmt.Errorf("%w: event reference is required", ErrInvalidReference)
	}
	match := eventTokenPattern.FindStringSubmatch(reference)
	if len(match) < 2 {
		return "", fmt.Errorf("%w: no event token in %q", ErrInvalidReference, reference)
	}
	return match[1], nil
}

type EventMatchDiscoverer struct {
	source MatchDiscoverySource
}

func NewEventMatchDiscoverer(source MatchDiscoverySource) *EventMatchDiscoverer {
	return &EventMatchDiscoverer{source: source}
}

// Discover resolves reference into its event token and ordered match ids.
// It never returns an empty id list without ErrEmptyEvent.
func (d *EventMatchDiscoverer) Discover(ctx context.Context, reference string) (string, []string, error) {
	token, err := ParseEventReference(reference)
	if err != nil {
		return "", nil, err
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.EventMatchDiscoverer.Discover", attribute.String("event.token", token))
	defer span.End()

	if d.source == nil {
		return "", nil, fmt.Errorf("%w: match discovery source is not configured", ErrDependencyUnavailable)
	}

	ids, err := d.source.DiscoverMatches(ctx, token)
	if err != nil {
		return token, nil, fmt.Errorf("discover matches for event=%s: %w", token, err)
	}
	if len(ids) == 0 {
		return token, nil, fmt.Errorf("%w: event=%s", ErrEmptyEvent, token)
	}
	return token, ids, nil
}
