package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	t.Run("single quoted url and headers", func(t *testing.T) {
		cmd := `curl 'http://media.local:8096/Users/Me' \
  -H 'Accept: application/json' \
  -H 'Authorization: MediaBrowser Client="Jellyfin Web", Token="abc123"'`

		req, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if req.URL != "http://media.local:8096/Users/Me" {
			t.Errorf("unexpected url: %s", req.URL)
		}
		if req.Headers["Accept"] != "application/json" {
			t.Errorf("unexpected headers: %v", req.Headers)
		}
	})

	t.Run("double quoted url", func(t *testing.T) {
		req, err := ParseCurlCommand([]byte(`curl "http://media.local/Items"`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.URL != "http://media.local/Items" {
			t.Errorf("unexpected url: %s", req.URL)
		}
	})

	t.Run("empty command is an error", func(t *testing.T) {
		if _, err := ParseCurlCommand([]byte("echo hello")); err == nil {
			t.Errorf("expected an error for a command without a request")
		}
	})
}

func TestParseCurlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.sh")
	if err := os.WriteFile(path, []byte(`curl 'http://media.local/Items'`), 0644); err != nil {
		t.Fatalf("failed to write curl file: %v", err)
	}

	req, err := ParseCurlFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.URL != "http://media.local/Items" {
		t.Errorf("unexpected url: %s", req.URL)
	}

	if _, err := ParseCurlFile(filepath.Join(t.TempDir(), "nope.sh")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestServerCredentials(t *testing.T) {
	tests := []struct {
		name    string
		req     CurlRequest
		wantURL string
		wantTok string
		wantErr bool
	}{
		{
			name: "token from authorization header",
			req: CurlRequest{
				URL:     "http://media.local:8096/Users/Me?something=1",
				Headers: map[string]string{"Authorization": `MediaBrowser Client="Web", Token="abc123"`},
			},
			wantURL: "http://media.local:8096",
			wantTok: "abc123",
		},
		{
			name: "token from emby authorization header",
			req: CurlRequest{
				URL:     "https://media.local/Items",
				Headers: map[string]string{"X-Emby-Authorization": `MediaBrowser Token="xyz"`},
			},
			wantURL: "https://media.local",
			wantTok: "xyz",
		},
		{
			name: "token from emby token header",
			req: CurlRequest{
				URL:     "http://media.local/Items",
				Headers: map[string]string{"X-Emby-Token": "plain"},
			},
			wantURL: "http://media.local",
			wantTok: "plain",
		},
		{
			name: "token from api_key query parameter",
			req: CurlRequest{
				URL:     "http://media.local/Items?api_key=qkey",
				Headers: map[string]string{},
			},
			wantURL: "http://media.local",
			wantTok: "qkey",
		},
		{
			name:    "missing url",
			req:     CurlRequest{Headers: map[string]string{"X-Emby-Token": "tok"}},
			wantErr: true,
		},
		{
			name: "missing token",
			req: CurlRequest{
				URL:     "http://media.local/Items",
				Headers: map[string]string{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serverURL, token, err := tt.req.ServerCredentials()
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected an error, got %s / %s", serverURL, token)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if serverURL != tt.wantURL || token != tt.wantTok {
				t.Errorf("got (%s, %s), want (%s, %s)", serverURL, token, tt.wantURL, tt.wantTok)
			}
		})
	}
}
