package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestParseEventReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		reference string
		want      string
		wantErr   error
	}{
		{name: "tv url", reference: "https://tv.dartconnect.com/event/mt_joe6163l_1", want: "mt_joe6163l_1"},
		{name: "url with suffix", reference: "https://tv.dartconnect.com/event/abc123/matches?x=1", want: "abc123"},
		{name: "bare path", reference: "event/abc_9", want: "abc_9"},
		{name: "empty", reference: "  ", wantErr: ErrInvalidReference},
		{name: "no token", reference: "https://tv.dartconnect.com/league/xyz", wantErr: ErrInvalidReference},
		{name: "prefix is not a path segment", reference: "https://x.test/myevent/abc", wantErr: ErrInvalidReference},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseEventReference(tc.reference)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("token = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEventMatchDiscoverer_EmptyEvent(t *testing.T) {
	t.Parallel()

	source := &stubDiscovery{}
	_, _, err := NewEventMatchDiscoverer(source).Discover(context.Background(), "https://tv.dartconnect.com/event/empty_1")
	if !errors.Is(err, ErrEmptyEvent) {
		t.Fatalf("expected ErrEmptyEvent, got %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected one discovery call, got %d", source.calls)
	}
}

func TestEventMatchDiscoverer_InvalidReferenceSkipsSource(t *testing.T) {
	t.Parallel()

	source := &stubDiscovery{ids: []string{"m1"}}
	_, _, err := NewEventMatchDiscoverer(source).Discover(context.Background(), "not a reference")
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	if source.calls != 0 {
		t.Fatalf("expected no discovery call, got %d", source.calls)
	}
}

func TestEventMatchDiscoverer_PreservesOrder(t *testing.T) {
	t.Parallel()

	source := &stubDiscovery{ids: []string{"m3", "m1", "m2"}}
	token, ids, err := NewEventMatchDiscoverer(source).Discover(context.Background(), "https://tv.dartconnect.com/event/ordered")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if token != "ordered" || len(ids) != 3 || ids[0] != "m3" || ids[2] != "m2" {
		t.Fatalf("unexpected result token=%s ids=%v", token, ids)
	}
}
