// Package connect provides the Garmin Connect HTTP client with session
// handling, error classification, and optional payload caching.
package connect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"garminexport/pkg/cache"
)

// Prometheus metrics for Garmin Connect requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garmin_requests_total",
		Help: "Total Garmin Connect requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "garmin_request_duration_seconds",
		Help:    "Garmin Connect request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garmin_request_errors_total",
		Help: "Total Garmin Connect request errors by endpoint and class",
	}, []string{"endpoint", "class"})
)

// Payload is a schema-free Garmin Connect response body. The service owns
// the shapes; nothing here validates them.
type Payload = map[string]any

// Config holds the client configuration.
type Config struct {
	// BaseURL is the Garmin Connect API base (no trailing slash).
	BaseURL string

	// SSOBaseURL is the sign-in service base (no trailing slash).
	SSOBaseURL string

	// UserAgent header sent with every request.
	UserAgent string

	// Timeout per HTTP request.
	Timeout time.Duration

	// HTTPClient overrides the default HTTP client (for testing).
	HTTPClient *http.Client

	// Cache is an optional payload cache for past-day responses.
	// Nil disables caching.
	Cache *cache.Manager

	// CachePastTTL is how long past-day payloads stay cached.
	CachePastTTL time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://connectapi.garmin.com",
		SSOBaseURL:   "https://sso.garmin.com",
		UserAgent:    "garminexport/0.3.0",
		Timeout:      30 * time.Second,
		CachePastTTL: 14 * 24 * time.Hour,
	}
}

// Client is the Garmin Connect API client. It performs single-shot
// requests only; retries and default substitution are the caller's
// concern.
type Client struct {
	httpClient *http.Client
	config     Config
	cache      *cache.Manager
	logger     zerolog.Logger

	mu      sync.RWMutex
	session *Session
}

// New creates a new Garmin Connect client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.SSOBaseURL == "" {
		return nil, fmt.Errorf("SSO base URL is required")
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	logger := log.With().Str("component", "connect-client").Logger()

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		cache:      cfg.Cache,
		logger:     logger,
	}, nil
}

// SetSession installs token material for authenticated requests.
func (c *Client) SetSession(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// Session returns the currently installed session, or nil.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Verify confirms the installed session is still accepted by the service
// with one cheap authenticated call.
func (c *Client) Verify(ctx context.Context) error {
	_, err := c.SocialProfile(ctx)
	return err
}

// getJSON performs an authenticated GET against the API base and decodes
// the response body into out. date scopes the request to a calendar day
// ("" for undated endpoints); dated requests for past days go through the
// payload cache when one is configured.
func (c *Client) getJSON(ctx context.Context, endpoint, path, date string, out any) error {
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	// Only finished days are cacheable: TTLFor returns 0 for today,
	// future dates, and undated requests, so those never touch the cache.
	var ttl time.Duration
	if c.cache != nil && date != "" {
		ttl = cache.TTLFor(date, time.Now(), c.config.CachePastTTL)
	}

	key := cache.Key{Endpoint: endpoint, Date: date}
	if ttl > 0 {
		entry, err := c.cache.Get(ctx, key)
		if err == nil {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Str("date", date).
				Msg("Cache hit")
			requestsTotal.WithLabelValues(endpoint, "cache").Inc()
			return c.decode(endpoint, entry.Data, out)
		}
		if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	data, err := c.do(ctx, endpoint, http.MethodGet, c.config.BaseURL+path, nil, true)
	if err != nil {
		return err
	}

	if ttl > 0 && len(data) > 0 {
		entry := &cache.Entry{
			Data:     data,
			Date:     date,
			CachedAt: time.Now(),
			Expires:  time.Now().Add(ttl),
		}
		if err := c.cache.Set(ctx, key, entry); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to cache response")
		} else {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Str("date", date).
				Dur("ttl", ttl).
				Msg("Cached response")
		}
	}

	return c.decode(endpoint, data, out)
}

// decode unmarshals a response body. Empty bodies decode to nothing:
// several wellness endpoints answer a day without data that way.
func (c *Client) decode(endpoint string, data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// do executes a single HTTP request and returns the response body.
// No retries happen here.
func (c *Client) do(ctx context.Context, endpoint, method, url string, body io.Reader, authed bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		session := c.Session()
		if !session.Valid() {
			return nil, ErrNotAuthenticated
		}
		req.Header.Set("Authorization", session.authorization())
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", method).
		Msg("Executing request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		requestErrors.WithLabelValues(endpoint, string(ErrorClassNetwork)).Inc()
		return nil, &APIError{
			ErrorClass: ErrorClassNetwork,
			Endpoint:   endpoint,
			Message:    "request failed",
			Err:        err,
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		requestErrors.WithLabelValues(endpoint, string(ErrorClassNetwork)).Inc()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassNetwork,
			Endpoint:   endpoint,
			Message:    "read response body",
			Err:        err,
		}
	}

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		errClass := classifyStatus(resp.StatusCode)
		requestErrors.WithLabelValues(endpoint, string(errClass)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Request error")

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Endpoint:   endpoint,
			Message:    resp.Status,
		}
	}

	return data, nil
}

// getPayload fetches a single object-shaped payload.
func (c *Client) getPayload(ctx context.Context, endpoint, path, date string) (Payload, error) {
	var out Payload
	if err := c.getJSON(ctx, endpoint, path, date, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// getPayloadList fetches an array-shaped payload.
func (c *Client) getPayloadList(ctx context.Context, endpoint, path, date string) ([]Payload, error) {
	var out []Payload
	if err := c.getJSON(ctx, endpoint, path, date, &out); err != nil {
		return nil, err
	}
	return out, nil
}
