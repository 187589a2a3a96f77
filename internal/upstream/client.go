// Package upstream reads record collections from the OctoFit REST API.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"example.com/octofit/internal/domain"
	"example.com/octofit/internal/observability"
)

// Collections served by the API.
const (
	CollectionActivities  = "activities"
	CollectionLeaderboard = "leaderboard"
	CollectionTeams       = "teams"
	CollectionUsers       = "users"
	CollectionWorkouts    = "workouts"
)

var knownCollections = map[string]struct{}{
	CollectionActivities:  {},
	CollectionLeaderboard: {},
	CollectionTeams:       {},
	CollectionUsers:       {},
	CollectionWorkouts:    {},
}

// IsKnownCollection reports whether the API serves the named collection.
func IsKnownCollection(name string) bool {
	_, ok := knownCollections[name]
	return ok
}

// Client fetches collections from <base>/api/<collection>/.
type Client struct {
	base         string
	httpClient   *http.Client
	strictShapes bool
	logger       *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithStrictShapes makes unrecognized payload shapes fail with *ShapeError.
func WithStrictShapes(strict bool) Option {
	return func(c *Client) { c.strictShapes = strict }
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient constructs a Client for the given API origin.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint of a collection.
func (c *Client) URL(collection string) string {
	return c.base + "/api/" + url.PathEscape(collection) + "/"
}

// Fetch issues a single GET for the collection and returns its normalized records.
func (c *Client) Fetch(ctx context.Context, collection string) ([]domain.Record, error) {
	if !IsKnownCollection(collection) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	started := time.Now()
	records, err := c.fetch(ctx, collection)
	elapsed := time.Since(started)

	switch {
	case err == nil:
		observability.RecordFetch(collection, observability.OutcomeReady, elapsed)
		observability.RecordReady(collection, len(records), time.Now())
	case errors.Is(err, context.Canceled):
		observability.RecordFetch(collection, observability.OutcomeCanceled, elapsed)
	default:
		observability.RecordFetch(collection, observability.OutcomeError, elapsed)
	}
	return records, err
}

func (c *Client) fetch(ctx context.Context, collection string) ([]domain.Record, error) {
	endpoint := c.URL(collection)
	c.logger.InfoContext(ctx, "fetching collection", slog.String("collection", collection), slog.String("url", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "collection fetch failed", slog.String("collection", collection), slog.Any("err", err))
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.ErrorContext(ctx, "collection fetch rejected", slog.String("collection", collection), slog.Int("status", resp.StatusCode))
		return nil, &StatusError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	c.logger.DebugContext(ctx, "collection payload", slog.String("collection", collection), slog.String("body", string(body)))

	normalized, err := Normalize(body)
	if err != nil {
		c.logger.ErrorContext(ctx, "collection payload is not JSON", slog.String("collection", collection), slog.Any("err", err))
		return nil, err
	}
	if normalized.Shape == ShapeUnrecognized {
		observability.RecordShapeFallback(collection)
		c.logger.WarnContext(ctx, "unrecognized payload shape", slog.String("collection", collection), slog.String("kind", normalized.Kind))
		if c.strictShapes {
			return nil, &ShapeError{Kind: normalized.Kind}
		}
	}

	c.logger.InfoContext(ctx, "collection fetched",
		slog.String("collection", collection),
		slog.String("shape", string(normalized.Shape)),
		slog.Int("records", len(normalized.Records)),
	)
	return normalized.Records, nil
}
