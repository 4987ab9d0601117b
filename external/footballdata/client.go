package footballdata

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/matchday-dev/matchday/internal/platform/logging"
	"github.com/matchday-dev/matchday/internal/platform/resilience"
)

const (
	defaultBaseURL   = "https://api.football-data.org/v4"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "matchday/1.0"
	maxBodyBytes     = 8 << 20
	maxDetailBytes   = 512

	headerAuthToken      = "X-Auth-Token"
	headerUnfoldLineups  = "X-Unfold-Lineups"
	headerUnfoldGoals    = "X-Unfold-Goals"
	headerUnfoldBookings = "X-Unfold-Bookings"
	headerUnfoldSubs     = "X-Unfold-Subs"
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	// AuthViaProxy drops the token header so a fronting proxy can inject
	// its own. The Token field may then stay empty.
	AuthViaProxy bool
	Timeout      time.Duration
	UserAgent    string
	// RateLimitPerMinute throttles outgoing calls to the plan's allowance.
	// Zero disables local throttling.
	RateLimitPerMinute int
	Logger             *logging.Logger
	CircuitBreaker     resilience.CircuitBreakerConfig
}

// Client is a thin typed wrapper over the football-data.org v4 API. It
// classifies failures and guards the upstream with an optional circuit
// breaker and request budget; retries belong to the caller.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	authViaProxy bool
	userAgent    string
	limiter      *rate.Limiter
	breaker      *resilience.CircuitBreaker
	logger       *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	var limiter *rate.Limiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimitPerMinute)/60.0), cfg.RateLimitPerMinute)
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		token:        strings.TrimSpace(cfg.Token),
		authViaProxy: cfg.AuthViaProxy,
		userAgent:    userAgent,
		limiter:      limiter,
		breaker:      resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		logger:       logger,
	}
}

// BreakerState exposes the circuit state for health reporting. A client
// without a breaker always reads as closed.
func (c *Client) BreakerState() resilience.CircuitState {
	if c.breaker == nil {
		return resilience.CircuitStateClosed
	}
	return c.breaker.State()
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, headers http.Header, target any) error {
	raw, err := c.request(ctx, op, path, query, headers)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return &Error{Kind: KindUnknown, Op: op, Detail: "undecodable response body", cause: err}
	}
	return nil
}

func (c *Client) request(ctx context.Context, op, path string, query url.Values, headers http.Header) ([]byte, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request",
				"op", op,
				"state", c.breaker.State(),
				"retry_after", c.breaker.RetryAfter(),
			)
			return nil, &Error{Kind: KindNetwork, Op: op, Detail: "upstream shed by circuit breaker", cause: err}
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Kind: KindNetwork, Op: op, Detail: "wait for request budget", cause: err}
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Op: op, Detail: "build request", cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for name, values := range headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	// The token travels as a header, never in the URL, so error strings and
	// access logs stay clean. Proxy mode leaves the header to the proxy.
	if !c.authViaProxy && c.token != "" {
		req.Header.Set(headerAuthToken, c.token)
	}

	c.logger.DebugContext(ctx, "football-data request", "op", op, "curl_preview", buildCurlPreview(req))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordCircuitResult(false)
		outErr := &Error{Kind: KindNetwork, Op: op, Detail: "send request", cause: err}
		c.logger.WarnContext(ctx, "football-data request failed", "op", op, "url", fullURL, "error", err)
		return nil, outErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if readErr != nil {
		c.recordCircuitResult(false)
		return nil, &Error{Kind: KindNetwork, Op: op, Detail: "read response body", cause: readErr}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.recordCircuitResult(true)
		return raw, nil
	}

	kind := classifyStatus(resp.StatusCode)
	// A 4xx proves the upstream answered and judged the request; only 5xx
	// and transport faults count against the breaker.
	c.recordCircuitResult(kind == KindClient)

	outErr := &Error{Kind: kind, StatusCode: resp.StatusCode, Op: op, Detail: upstreamMessage(raw)}
	c.logger.WarnContext(ctx, "football-data request rejected",
		"op", op,
		"status", resp.StatusCode,
		"kind", string(kind),
		"detail", outErr.Detail,
	)
	return nil, outErr
}

func (c *Client) recordCircuitResult(healthy bool) {
	if c.breaker == nil {
		return
	}
	if healthy {
		c.breaker.RecordSuccess()
		return
	}
	c.breaker.RecordFailure()
}

type upstreamErrorBody struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}

// upstreamMessage pulls the human-readable message out of an error body,
// falling back to a truncated raw snippet when the body is not the usual
// {"message": ...} shape.
func upstreamMessage(raw []byte) string {
	var body upstreamErrorBody
	if err := sonic.Unmarshal(raw, &body); err == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return truncateForLog(msg, maxDetailBytes)
		}
	}
	return truncateForLog(strings.TrimSpace(string(raw)), maxDetailBytes)
}

var previewHeaderOrder = []string{
	"Accept",
	"User-Agent",
	headerAuthToken,
	headerUnfoldLineups,
	headerUnfoldGoals,
	headerUnfoldBookings,
	headerUnfoldSubs,
}

func buildCurlPreview(req *http.Request) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart(shellQuote(req.URL.String()))
	for _, name := range previewHeaderOrder {
		value := req.Header.Get(name)
		if value == "" {
			continue
		}
		if name == headerAuthToken {
			value = "***"
		}
		appendPart("-H")
		appendPart(shellQuote(name + ": " + value))
	}
	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
