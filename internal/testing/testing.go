// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/muse/internal/models"
)

// MockCatalog is a test double for [services.Catalog].
//
// Nil funcs return empty results. Every call is recorded in Calls.
type MockCatalog struct {
	SearchFunc    func(ctx context.Context, artist string) ([]models.CatalogWork, error)
	RelationsFunc func(ctx context.Context, workID string) (*models.WorkInfo, error)
	RecordingFunc func(ctx context.Context, workID string) (string, error)

	mu    sync.Mutex
	Calls []string
}

func (m *MockCatalog) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockCatalog) SearchArtistWorks(ctx context.Context, artist string) ([]models.CatalogWork, error) {
	m.record("search:" + artist)
	if m.SearchFunc == nil {
		return []models.CatalogWork{}, nil
	}
	return m.SearchFunc(ctx, artist)
}

func (m *MockCatalog) WorkRelations(ctx context.Context, workID string) (*models.WorkInfo, error) {
	m.record("relations:" + workID)
	if m.RelationsFunc == nil {
		return &models.WorkInfo{Relations: []models.CatalogRelation{}}, nil
	}
	return m.RelationsFunc(ctx, workID)
}

func (m *MockCatalog) FirstRecordingID(ctx context.Context, workID string) (string, error) {
	m.record("recording:" + workID)
	if m.RecordingFunc == nil {
		return "", nil
	}
	return m.RecordingFunc(ctx, workID)
}

func (m *MockCatalog) Name() string { return "mock" }

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after maxWrites writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
