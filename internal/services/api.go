// Raw HTTP client for the catalog web service
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	defaultCatalogBaseURL = "https://musicbrainz.org/ws/2"
	defaultUserAgent      = "muse/0.1.0 ( https://github.com/desertthunder/muse )"
)

// APIService performs rate-limited, cached GET requests against the catalog web service.
type APIService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Cache
}

// APIOpts configures an [APIService].
type APIOpts struct {
	BaseURL   string        // Service root, e.g. https://musicbrainz.org/ws/2
	UserAgent string        // Sent on every request
	Client    *http.Client  // Defaults to a client with Timeout
	Timeout   time.Duration // Used only when Client is nil
	RateLimit float64       // Requests per second; <= 0 disables limiting
	CacheTTL  time.Duration // <= 0 disables response caching
}

// NewAPIService creates a new API service instance for the catalog.
func NewAPIService(opts APIOpts) *APIService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultCatalogBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	var c *cache.Cache
	if opts.CacheTTL > 0 {
		c = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}

	return &APIService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: opts.Client,
		limiter:    rate.NewLimiter(limit, 1),
		cache:      c,
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsXML      bool
	Cached     bool
}

// OK reports whether the response has a 2xx status.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// URL builds the absolute URL for path and query.
func (a *APIService) URL(path string, query url.Values) string {
	u := a.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Get performs a GET request to the specified path and returns the raw response.
//
// Successful responses are served from the cache when present. Misses wait on the rate limiter first.
func (a *APIService) Get(ctx context.Context, path string, query url.Values) (*APIResponse, error) {
	fullURL := a.URL(path, query)

	if a.cache != nil {
		if hit, ok := a.cache.Get(fullURL); ok {
			resp := *hit.(*APIResponse)
			resp.Cached = true
			return &resp, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "application/xml")

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		IsXML:      strings.Contains(resp.Header.Get("Content-Type"), "xml"),
	}

	if a.cache != nil && apiResp.OK() {
		a.cache.SetDefault(fullURL, apiResp)
	}

	return apiResp, nil
}

// Flush drops every cached response.
func (a *APIService) Flush() {
	if a.cache != nil {
		a.cache.Flush()
	}
}
