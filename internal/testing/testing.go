// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/dirtflix/dfx/internal/filters"
	"github.com/dirtflix/dfx/internal/models"
)

// MockServer is a configurable test double for [services.MediaServer]
type MockServer struct {
	Users    []models.User
	Items    []models.MediaItem
	Genres   []string
	Studios  []string
	Created  []models.PlaylistDraft
	Appended map[string][][]string

	PlaylistID string
	Err        error

	// LastSpec records the most recent item query for assertions
	LastSpec filters.Spec
}

func (m *MockServer) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.Users, m.Err
}

func (m *MockServer) QueryItems(ctx context.Context, spec filters.Spec) ([]models.MediaItem, error) {
	m.LastSpec = spec
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Items, nil
}

func (m *MockServer) GenreNames(ctx context.Context, kinds []models.Kind) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Genres, nil
}

func (m *MockServer) ItemStudioNames(ctx context.Context, kinds []models.Kind) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Studios, nil
}

func (m *MockServer) StudioNames(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Studios, nil
}

func (m *MockServer) CreatePlaylist(ctx context.Context, draft models.PlaylistDraft) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Created = append(m.Created, draft)
	if m.PlaylistID == "" {
		return "mock-playlist", nil
	}
	return m.PlaylistID, nil
}

func (m *MockServer) AddToPlaylist(ctx context.Context, playlistID string, itemIDs []string) error {
	if m.Err != nil {
		return m.Err
	}
	if m.Appended == nil {
		m.Appended = make(map[string][][]string)
	}
	m.Appended[playlistID] = append(m.Appended[playlistID], itemIDs)
	return nil
}

func (m *MockServer) ItemImageURL(item models.MediaItem, width, height int) string {
	if item.PrimaryImageRef() == "" {
		return ""
	}
	return "http://mock/Items/" + item.ID + "/Images/Primary"
}

func (m *MockServer) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
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

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
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
