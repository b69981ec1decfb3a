package dartconnect

import (
	"context"
	"errors"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/darts-league/internal/platform/logging"
	"github.com/riskibarqy/darts-league/internal/platform/resilience"
	"github.com/riskibarqy/darts-league/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, retries int) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		TVBaseURL:    server.URL,
		RecapBaseURL: server.URL,
		MaxRetries:   retries,
		Logger:       logging.NewNop(),
	})
	client.backoff = func(int) time.Duration { return time.Millisecond }
	return client
}

func inertiaDocument(state string) string {
	return `<!DOCTYPE html><html><head><title>Recap</title></head><body>` +
		`<div id="app" data-page="` + html.EscapeString(state) + `"></div></body></html>`
}

func TestDiscoverMatches_PreservesSourceOrder(t *testing.T) {
	t.Parallel()

	var gotMethod, gotBody, gotReferer string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api2/event/mt_joe6163l_1/matches" {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		gotMethod, gotBody, gotReferer = r.Method, string(body), r.Header.Get("Referer")
		_, _ = w.Write([]byte(`{
			"status": 200,
			"payload": {
				"zeta": [{"mi": "m-3"}, {"mi": 1001}, {"other": true}],
				"alpha": {"title": "Board 2", "segments": [{"id": "m-1"}, {"mi": "m-3"}]},
				"meta": "ignored",
				"beta": [{"mi": "", "id": "m-2"}, "noise"]
			}
		}`))
	}), 0)

	ids, err := client.DiscoverMatches(context.Background(), "mt_joe6163l_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m-3", "1001", "m-1", "m-2"}, ids)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "{}", gotBody)
	assert.Contains(t, gotReferer, "/event/mt_joe6163l_1")
}

func TestDiscoverMatches_EmptyPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"payload": {}}`))
	}), 0)

	ids, err := client.DiscoverMatches(context.Background(), "evt")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDiscoverMatches_MalformedJSON(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}), 0)

	_, err := client.DiscoverMatches(context.Background(), "evt")
	assert.ErrorIs(t, err, usecase.ErrParse)
}

func TestFetchRoster_DecodesEmbeddedState(t *testing.T) {
	t.Parallel()

	state := `{"component":"Matches/Players","props":{"players":[
		{"name":"Luke Humphries","total_games":"7","total_wins":4,"average":"98.42","card_link":"https://recap.dartconnect.com/card/1"},
		{"name":"Jonny Clayton","total_games":7,"total_wins":3,"average":91.1,"card_link":""}
	]}}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players/abc123" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(inertiaDocument(state)))
	}), 0)

	roster, err := client.FetchRoster(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Luke Humphries", roster[0].PlayerName)
	assert.Equal(t, 7, roster[0].GamesPlayed)
	assert.Equal(t, 4, roster[0].GamesWon)
	assert.InDelta(t, 98.42, roster[0].Average, 1e-9)
	assert.Equal(t, "https://recap.dartconnect.com/card/1", roster[0].ProfileLink)
}

func TestFetchRoster_MissingStateIsParseError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="app"></div></body></html>`))
	}), 0)

	_, err := client.FetchRoster(context.Background(), "abc123")
	assert.ErrorIs(t, err, usecase.ErrParse)
}

func TestFetchRoster_RejectsNamelessPlayer(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(inertiaDocument(`{"props":{"players":[{"name":"","average":80}]}}`)))
	}), 0)

	_, err := client.FetchRoster(context.Background(), "abc123")
	assert.ErrorIs(t, err, usecase.ErrParse)
}

func TestFetchDistribution_DegradesMalformedRows(t *testing.T) {
	t.Parallel()

	state := `{"props":{
		"distribution":[{"100":"3","140":1,"180":2}, []],
		"first_nine":[{"average":"101.5"}, {"average":"-"}],
		"checkout_stats":[
			{"efficiency":"40.00%","opportunities":5,"hit":2,"highest":"121","average":80.5},
			"broken",
			{"efficiency":"-","opportunities":null,"hit":0,"highest":0,"average":0},
			{"efficiency":"0.00%","opportunities":"0","hit":0}
		]
	}}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/counts/abc123" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(inertiaDocument(state)))
	}), 0)

	set, err := client.FetchDistribution(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, set.Distributions, 2)
	assert.Equal(t, 3, set.Distributions[0]["100"])
	assert.Equal(t, 2, set.Distributions[0]["180"])
	assert.Empty(t, set.Distributions[1])

	require.Len(t, set.FirstNine, 2)
	require.NotNil(t, set.FirstNine[0])
	assert.InDelta(t, 101.5, *set.FirstNine[0], 1e-9)
	assert.Nil(t, set.FirstNine[1])

	require.Len(t, set.Checkouts, 4)
	require.NotNil(t, set.Checkouts[0])
	assert.Equal(t, 121, set.Checkouts[0].HighestCheckout)
	assert.Equal(t, 2, set.Checkouts[0].Hits)
	assert.Equal(t, "40.00%", set.Checkouts[0].EfficiencyLabel)
	assert.Nil(t, set.Checkouts[1])
	assert.Nil(t, set.Checkouts[2], "null opportunities means no checkout data")
	require.NotNil(t, set.Checkouts[3])
	assert.Equal(t, 0, set.Checkouts[3].Opportunities)
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"payload":{"s":[{"mi":"m1"}]}}`))
	}), 1)

	ids, err := client.DiscoverMatches(context.Background(), "evt")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, ids)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_NotFoundIsFetchErrorWithoutRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}), 3)

	_, err := client.FetchRoster(context.Background(), "gone")
	assert.ErrorIs(t, err, usecase.ErrFetch)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		TVBaseURL:      server.URL,
		RecapBaseURL:   server.URL,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenProbes: 1},
	})

	for i := 0; i < 2; i++ {
		_, err := client.FetchRoster(context.Background(), "m1")
		require.ErrorIs(t, err, usecase.ErrFetch)
	}

	_, err := client.FetchRoster(context.Background(), "m1")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once the circuit is open, got %v", err)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_OversizedBodyIsFetchErrorWithoutRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(inertiaDocument(`{"props":{"players":[{"name":"Ann","average":80}]}}`)))
	}), 2)
	client.maxBodyBytes = 64

	_, err := client.FetchRoster(context.Background(), "abc123")
	require.ErrorIs(t, err, usecase.ErrFetch)
	assert.ErrorIs(t, err, ErrResponseTooLarge)
	assert.NotErrorIs(t, err, usecase.ErrParse)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_BodyAtLimitIsAccepted(t *testing.T) {
	t.Parallel()

	document := inertiaDocument(`{"props":{"players":[{"name":"Ann","average":80}]}}`)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(document))
	}), 0)
	client.maxBodyBytes = int64(len(document))

	roster, err := client.FetchRoster(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Ann", roster[0].PlayerName)
}
