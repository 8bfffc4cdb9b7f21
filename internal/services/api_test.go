package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dirtflix/dfx/internal/shared"
)

func newAPIService(t *testing.T, handler http.HandlerFunc) (*APIService, *[]*http.Request) {
	t.Helper()
	jellyfin, requests := newTestService(t, handler)
	return NewAPIService(jellyfin, shared.NewLogger(nil)), requests
}

func TestAPIDo(t *testing.T) {
	t.Run("returns the raw body", func(t *testing.T) {
		api, requests := newAPIService(t, jsonHandler(http.StatusOK, `{"ServerName":"media"}`))

		data, err := api.Do(context.Background(), http.MethodGet, "/System/Info", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if string(data) != `{"ServerName":"media"}` {
			t.Errorf("unexpected body: %s", data)
		}
		if auth := (*requests)[0].Header.Get("X-Emby-Authorization"); auth == "" {
			t.Errorf("request not authenticated")
		}
	})

	t.Run("prefixes a bare path", func(t *testing.T) {
		api, requests := newAPIService(t, jsonHandler(http.StatusOK, `{}`))

		if _, err := api.Do(context.Background(), http.MethodGet, "System/Info", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path := (*requests)[0].URL.Path; path != "/System/Info" {
			t.Errorf("unexpected path: %s", path)
		}
	})

	t.Run("posts a body with the json content type", func(t *testing.T) {
		api, requests := newAPIService(t, jsonHandler(http.StatusOK, `{}`))

		body := strings.NewReader(`{"Name":"test"}`)
		if _, err := api.Do(context.Background(), http.MethodPost, "/Collections", body); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := (*requests)[0]
		if req.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type not set")
		}
		if req.Header.Get("X-Test-Body") != `{"Name":"test"}` {
			t.Errorf("unexpected body: %s", req.Header.Get("X-Test-Body"))
		}
	})

	t.Run("non-2xx becomes RemoteError", func(t *testing.T) {
		api, _ := newAPIService(t, jsonHandler(http.StatusNotFound, `Not here`))

		_, err := api.Do(context.Background(), http.MethodGet, "/Nope", nil)
		var remote *RemoteError
		if !errors.As(err, &remote) {
			t.Fatalf("expected *RemoteError, got %v", err)
		}
		if remote.Status != http.StatusNotFound || remote.Body != "Not here" {
			t.Errorf("unexpected remote error: %+v", remote)
		}
	})

	t.Run("missing credentials fail before any request", func(t *testing.T) {
		api := NewAPIService(NewJellyfinService("", "", "", nil), shared.NewLogger(nil))

		_, err := api.Do(context.Background(), http.MethodGet, "/System/Info", nil)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}
