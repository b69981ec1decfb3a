package dartconnect

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/darts-league/internal/platform/logging"
	"github.com/riskibarqy/darts-league/internal/platform/resilience"
	"github.com/riskibarqy/darts-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultTVBaseURL    = "https://tv.dartconnect.com"
	defaultRecapBaseURL = "https://recap.dartconnect.com"
	defaultUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultMaxBodyBytes = 6 << 20
)

var errDartConnectTransient = crerr.New("dartconnect transient failure")

// ErrResponseTooLarge marks a response body over the read limit. It is
// always wrapped together with usecase.ErrFetch.
var ErrResponseTooLarge = stderrors.New("dartconnect response body too large")

type ClientConfig struct {
	HTTPClient     *http.Client
	TVBaseURL      string
	RecapBaseURL   string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

// Client talks to the DartConnect TV api and the recap site. It implements
// usecase.MatchDiscoverySource and usecase.MatchStatsSource.
type Client struct {
	httpClient   *http.Client
	tvBaseURL    string
	recapBaseURL string
	userAgent    string
	maxRetries   int
	maxBodyBytes int64
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	backoff      func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient:   httpClient,
		tvBaseURL:    trimBaseURL(cfg.TVBaseURL, defaultTVBaseURL),
		recapBaseURL: trimBaseURL(cfg.RecapBaseURL, defaultRecapBaseURL),
		userAgent:    firstNonEmpty(strings.TrimSpace(cfg.UserAgent), defaultUserAgent),
		maxRetries:   max(cfg.MaxRetries, 0),
		maxBodyBytes: defaultMaxBodyBytes,
		logger:       logger,
		breaker:      cfg.CircuitBreaker.Build(),
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

type request struct {
	method  string
	url     string
	body    []byte
	accept  string
	referer string
}

// do runs req through the breaker and retry loop and passes the response
// body to consume. The body buffer is pooled and must not escape consume.
func (c *Client) do(ctx context.Context, req request, consume func([]byte) error) error {
	var result error
	err := c.breaker.Do(func() error {
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)

		if err := c.execute(ctx, req, buf); err != nil {
			return err
		}
		result = consume(buf.B)
		return nil
	}, isCircuitFailure)

	switch {
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "dartconnect circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: dartconnect is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case err != nil:
		return err
	}
	return result
}

func (c *Client) execute(ctx context.Context, req request, buf *bytebufferpool.ByteBuffer) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		buf.Reset()

		var body io.Reader
		if req.body != nil {
			body = bytes.NewReader(req.body)
		}
		httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		httpReq.Header.Set("User-Agent", c.userAgent)
		httpReq.Header.Set("Accept", req.accept)
		if req.referer != "" {
			httpReq.Header.Set("Referer", req.referer)
		}
		if req.body != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %w: send request: %v", usecase.ErrFetch, errDartConnectTransient, err)
		} else {
			_, readErr := buf.ReadFrom(io.LimitReader(resp.Body, c.maxBodyBytes+1))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: %w: read response body: %v", usecase.ErrFetch, errDartConnectTransient, readErr)
			case int64(buf.Len()) > c.maxBodyBytes:
				return fmt.Errorf("%w: %w: status=%d limit=%d bytes", usecase.ErrFetch, ErrResponseTooLarge, resp.StatusCode, c.maxBodyBytes)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: %w: status=%d body=%s", usecase.ErrFetch, errDartConnectTransient, resp.StatusCode, abbreviateBody(buf.B))
			default:
				return fmt.Errorf("%w: status=%d body=%s", usecase.ErrFetch, resp.StatusCode, abbreviateBody(buf.B))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "dartconnect request failed", "url", req.url, "error", lastErr)
	return lastErr
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errDartConnectTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func trimBaseURL(value, fallback string) string {
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if value == "" {
		return fallback
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
