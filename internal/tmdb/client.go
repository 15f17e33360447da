package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/"
	DefaultLanguage     = "ko-KR"
	defaultTimeout      = 15 * time.Second
	userAgent           = "Marquee/1.0"
)

// Image sizes used by the UI
const (
	PosterSize   = "w300"
	BackdropSize = "original"
)

// Options configures a Client
type Options struct {
	BaseURL    string
	APIKey     string
	Language   string
	Timeout    time.Duration
	HTTPClient *http.Client // optional, overrides Timeout
}

// Client is a TMDB v3 client. It implements domain.CatalogRepository.
// Every request carries the API key and the fixed response locale.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// APIError is returned for non-200 responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("tmdb API error %d", e.StatusCode)
}

// Unwrap maps HTTP statuses onto domain sentinels
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return domain.ErrCatalogUnavailable
	}
}

// New creates a TMDB client
func New(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		language:   opts.Language,
		httpClient: httpClient,
		logger:     logger,
	}
}

// List fetches a category list described by q
func (c *Client) List(ctx context.Context, q domain.Query) ([]domain.MediaItem, error) {
	var resp listResponse
	if err := c.get(ctx, q.Path, q.Params, &resp); err != nil {
		return nil, fmt.Errorf("list %s: %w", q.Key, err)
	}
	return mapResults(resp.Results, q.Kind), nil
}

// SearchMulti searches movies, series and people in one request
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{
		"query":         {query},
		"include_adult": {"false"},
		"page":          {strconv.Itoa(page)},
	}

	var resp listResponse
	if err := c.get(ctx, "/search/multi", params, &resp); err != nil {
		return domain.SearchPage{}, fmt.Errorf("search %q page %d: %w", query, page, err)
	}

	return domain.SearchPage{
		Results:    mapResults(resp.Results, domain.KindUnknown),
		Page:       resp.Page,
		TotalPages: resp.TotalPages,
	}, nil
}

// Videos lists promotional videos for a movie or series
func (c *Client) Videos(ctx context.Context, kind domain.MediaKind, id int) ([]domain.Video, error) {
	if !kind.IsBrowsable() {
		return nil, fmt.Errorf("videos for %q %d: %w", kind, id, domain.ErrNotFound)
	}

	var resp videosResponse
	path := fmt.Sprintf("/%s/%d/videos", kind, id)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("videos for %s %d: %w", kind, id, err)
	}
	return mapVideos(resp.Results), nil
}

// ImageURL returns the full URL for an image path, empty when path is empty
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + size + path
}

// get performs an authenticated GET request and decodes the JSON response
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	q.Set("api_key", c.apiKey)
	if q.Get("language") == "" {
		q.Set("language", c.language)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn("tmdb request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("tmdb request", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.StatusMessage != "" {
		apiErr.Message = payload.StatusMessage
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// IsAuthError reports whether err means the credential was rejected
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
