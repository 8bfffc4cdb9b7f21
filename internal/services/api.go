package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dirtflix/dfx/internal/shared"
)

// APIService issues raw authenticated requests against arbitrary server
// paths. It backs the `api` command for poking at endpoints the typed
// gateway does not cover.
type APIService struct {
	server *JellyfinService
	logger *log.Logger
}

func NewAPIService(server *JellyfinService, logger *log.Logger) *APIService {
	return &APIService{server: server, logger: logger}
}

// Do performs the request and returns the raw response body. The path is
// taken relative to the configured server address; non-2xx responses become
// a [*RemoteError] like the typed gateway's.
func (a *APIService) Do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	if err := a.server.checkConfig(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, a.server.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Emby-Authorization", a.server.authHeader())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	a.logger.Debug("raw api request", "method", method, "path", path)

	resp, err := a.server.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	return data, nil
}
