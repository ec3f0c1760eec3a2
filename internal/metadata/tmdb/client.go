// Package tmdb provides a rate-limited client for The Movie Database
// API and the film enricher built on top of it.
package tmdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/screendapp/screend-server/internal/config"
	"github.com/screendapp/screend-server/internal/ratelimit"
)

const (
	// Rate limit defaults: TMDB allows ~50 rps per key
	defaultRPS   = 40.0
	defaultBurst = 40

	// HTTP client settings
	defaultTimeout = 30 * time.Second

	defaultBaseURL = "https://api.themoviedb.org/3"
)

// limiterKey keys the outbound limiter; all requests share one bucket.
const limiterKey = "tmdb"

// Client is a rate-limited TMDB API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
	apiKey  string
	baseURL string
}

// New creates a new TMDB client.
func New(cfg config.TMDBConfig, logger *slog.Logger) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(rps, burst),
		logger:  logger,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
	}
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// doRequest executes an HTTP request with rate limiting. The API key
// is injected into the query string.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	// Wait for rate limit
	if err := c.limiter.Wait(ctx, limiterKey); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Set headers
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Screend/1.0")

	// Execute
	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	// Read body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// Check status
	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

// Raw API response types (internal)

type rawSearchResponse struct {
	Results []rawSearchResult `json:"results"`
}

type rawSearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

type rawMovieDetails struct {
	ID                  int64                  `json:"id"`
	Title               string                 `json:"title"`
	ReleaseDate         string                 `json:"release_date"`
	Runtime             int                    `json:"runtime"`
	Genres              []rawGenre             `json:"genres"`
	ProductionCountries []rawProductionCountry `json:"production_countries"`
}

type rawGenre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rawProductionCountry struct {
	ISO  string `json:"iso_3166_1"`
	Name string `json:"name"`
}

type rawCredits struct {
	Cast []rawCastMember `json:"cast"`
	Crew []rawCrewMember `json:"crew"`
}

type rawCastMember struct {
	Name               string `json:"name"`
	Character          string `json:"character"`
	KnownForDepartment string `json:"known_for_department"`
	ProfilePath        string `json:"profile_path"`
}

type rawCrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}
