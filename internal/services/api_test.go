package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tu "github.com/desertthunder/muse/internal/testing"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService(APIOpts{BaseURL: "http://example.com/ws/2/", Client: customClient})

			if srv.baseURL != "http://example.com/ws/2" {
				t.Errorf("expected trailing slash trimmed, got %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty Options", func(t *testing.T) {
			srv := NewAPIService(APIOpts{Timeout: 5 * time.Second})

			if srv.baseURL != defaultCatalogBaseURL {
				t.Errorf("expected default baseURL, got %s", srv.baseURL)
			}
			if srv.userAgent != defaultUserAgent {
				t.Errorf("expected default user agent, got %s", srv.userAgent)
			}
			if srv.httpClient.Timeout != 5*time.Second {
				t.Errorf("expected client timeout 5s, got %v", srv.httpClient.Timeout)
			}
			if srv.cache != nil {
				t.Error("expected caching disabled without CacheTTL")
			}
		})
	})

	t.Run("URL", func(t *testing.T) {
		srv := NewAPIService(APIOpts{BaseURL: "http://example.com/ws/2"})

		got := srv.URL("/work", url.Values{"artist": {"abc"}, "limit": {"100"}})
		if got != "http://example.com/ws/2/work?artist=abc&limit=100" {
			t.Errorf("unexpected URL %s", got)
		}
		if got := srv.URL("artist", nil); got != "http://example.com/ws/2/artist" {
			t.Errorf("unexpected URL %s", got)
		}
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Sends Headers And Reads XML", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/ws/2/artist" {
					t.Errorf("expected path /ws/2/artist, got %s", r.URL.Path)
				}
				if ua := r.Header.Get("User-Agent"); ua != "muse-test/1.0" {
					t.Errorf("expected user agent muse-test/1.0, got %s", ua)
				}
				w.Header().Set("Content-Type", "application/xml; charset=utf-8")
				w.Write([]byte(`<metadata/>`))
			}))
			defer server.Close()

			srv := NewAPIService(APIOpts{BaseURL: server.URL + "/ws/2", UserAgent: "muse-test/1.0"})
			resp, err := srv.Get(context.Background(), "artist", nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.OK() || !resp.IsXML {
				t.Errorf("expected OK XML response, got status %d xml %v", resp.StatusCode, resp.IsXML)
			}
			if string(resp.Body) != "<metadata/>" {
				t.Errorf("unexpected body %q", resp.Body)
			}
		})

		t.Run("Caches Successful Responses", func(t *testing.T) {
			var hits atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.Write([]byte(`<metadata/>`))
			}))
			defer server.Close()

			srv := NewAPIService(APIOpts{BaseURL: server.URL, CacheTTL: time.Minute})
			ctx := context.Background()

			first, err := srv.Get(ctx, "work/W1", nil)
			if err != nil {
				t.Fatalf("first request: %v", err)
			}
			second, err := srv.Get(ctx, "work/W1", nil)
			if err != nil {
				t.Fatalf("second request: %v", err)
			}

			if hits.Load() != 1 {
				t.Errorf("expected 1 upstream hit, got %d", hits.Load())
			}
			if first.Cached || !second.Cached {
				t.Errorf("expected only second response cached, got %v/%v", first.Cached, second.Cached)
			}

			srv.Flush()
			if _, err := srv.Get(ctx, "work/W1", nil); err != nil {
				t.Fatalf("third request: %v", err)
			}
			if hits.Load() != 2 {
				t.Errorf("expected flush to force a new request, got %d hits", hits.Load())
			}
		})

		t.Run("Does Not Cache Failures", func(t *testing.T) {
			var hits atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
			defer server.Close()

			srv := NewAPIService(APIOpts{BaseURL: server.URL, CacheTTL: time.Minute})
			for range 2 {
				resp, err := srv.Get(context.Background(), "artist", nil)
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				if resp.OK() {
					t.Error("expected non-OK response")
				}
			}
			if hits.Load() != 2 {
				t.Errorf("expected 2 upstream hits, got %d", hits.Load())
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewAPIService(APIOpts{BaseURL: "http://example.com"})
			_, err := srv.Get(context.Background(), "test\x00invalid", nil)

			if err == nil || !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv := NewAPIService(APIOpts{BaseURL: "http://example.com", Client: client})
			_, err := srv.Get(context.Background(), "test", nil)

			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			srv := NewAPIService(APIOpts{BaseURL: "http://example.com", Client: client})
			_, err := srv.Get(context.Background(), "test", nil)

			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			srv := NewAPIService(APIOpts{BaseURL: "http://example.com", RateLimit: 0.001})
			srv.limiter.Allow()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := srv.Get(ctx, "test", nil); err == nil {
				t.Error("expected error for canceled context")
			}
		})
	})
}
