// Utilities for parsing cURL commands copied from the browser's network tab.
package shared

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
)

// CurlRequest represents the URL and headers parsed from a cURL command.
type CurlRequest struct {
	URL     string
	Headers map[string]string
}

var (
	curlURLRegex    = regexp.MustCompile(`curl\s+'([^']+)'|curl\s+"([^"]+)"|curl\s+(https?://\S+)`)
	curlHeaderRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	curlTokenRegex  = regexp.MustCompile(`Token="([^"]+)"`)
)

// ParseCurlFile reads a .sh file containing a cURL command and extracts the
// request URL and headers.
func ParseCurlFile(filepath string) (*CurlRequest, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts the request URL
// and headers.
func ParseCurlCommand(data []byte) (*CurlRequest, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	req := &CurlRequest{Headers: make(map[string]string)}

	if m := curlURLRegex.FindStringSubmatch(curlCmd); m != nil {
		for _, group := range m[1:] {
			if group != "" {
				req.URL = group
				break
			}
		}
	}

	for _, match := range curlHeaderRegex.FindAllStringSubmatch(curlCmd, -1) {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) == 2 {
			req.Headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}

	if req.URL == "" && len(req.Headers) == 0 {
		return nil, fmt.Errorf("no request found in curl command")
	}

	return req, nil
}

// ServerCredentials extracts the Jellyfin server base URL and API token from
// a parsed browser request.
//
// The token is taken from the MediaBrowser authorization header
// (Authorization or X-Emby-Authorization), the X-Emby-Token header, or an
// api_key query parameter, in that order.
func (c *CurlRequest) ServerCredentials() (serverURL, token string, err error) {
	if c.URL != "" {
		parsed, parseErr := url.Parse(c.URL)
		if parseErr != nil || parsed.Host == "" {
			return "", "", fmt.Errorf("failed to parse request URL %q", c.URL)
		}
		serverURL = parsed.Scheme + "://" + parsed.Host

		if key := parsed.Query().Get("api_key"); key != "" {
			token = key
		}
	}

	for _, header := range []string{"Authorization", "X-Emby-Authorization"} {
		if value, ok := c.Headers[header]; ok && token == "" {
			if m := curlTokenRegex.FindStringSubmatch(value); m != nil {
				token = m[1]
			}
		}
	}
	if value, ok := c.Headers["X-Emby-Token"]; ok && token == "" {
		token = value
	}

	if serverURL == "" {
		return "", "", fmt.Errorf("no server URL found in curl command")
	}
	if token == "" {
		return "", "", fmt.Errorf("no API token found in curl command")
	}

	return serverURL, token, nil
}
