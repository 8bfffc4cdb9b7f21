// Jellyfin implementation of [MediaServer]
//
// Endpoint shapes based on https://api.jellyfin.org/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dirtflix/dfx/internal/filters"
	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/shared"
)

const (
	clientName    = "Dirtflix Curator"
	clientVersion = "0.3.0"

	// queryLimit caps a single item fetch. The server enforces it; the
	// client does not page past it.
	queryLimit = "1000"

	itemFields = "Overview,Taglines,CriticRating,CommunityRating,ProductionYear,Studios,ImageTags,Name,Type,Genres"
)

// JellyfinService implements [MediaServer] against a Jellyfin server using
// API-token authentication.
type JellyfinService struct {
	baseURL    string
	token      string
	device     string
	userID     string
	httpClient *http.Client
}

// NewJellyfinService creates a gateway for the given server address and API
// token. The device label appears in the server's device list; it defaults
// to "dfx" when empty.
func NewJellyfinService(serverURL, token, device string, client *http.Client) *JellyfinService {
	if device == "" {
		device = "dfx"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &JellyfinService{
		baseURL:    strings.TrimRight(serverURL, "/"),
		token:      token,
		device:     device,
		httpClient: client,
	}
}

// SetUser scopes subsequent queries, the authorization header, and playlist
// ownership to the given user id. An empty id clears the scope.
func (s *JellyfinService) SetUser(userID string) { s.userID = userID }

// UserID returns the current scoping user id, if any.
func (s *JellyfinService) UserID() string { return s.userID }

func (s *JellyfinService) Name() string { return "Jellyfin" }

// authHeader builds the MediaBrowser authorization header carrying the
// client identifier, device label, version, token, and optional user scope.
func (s *JellyfinService) authHeader() string {
	header := fmt.Sprintf(`MediaBrowser Client="%s", Device="%s", Version="%s", Token="%s"`,
		clientName, s.device, clientVersion, s.token)
	if s.userID != "" {
		header += fmt.Sprintf(`, UserId="%s"`, s.userID)
	}
	return header
}

// checkConfig fails before any network attempt when the server address or
// token is missing.
func (s *JellyfinService) checkConfig() error {
	if s.baseURL == "" || s.token == "" {
		return shared.ErrMissingCredentials
	}
	return nil
}

// doRequest performs an authenticated HTTP request against the server.
//
// Transport failures wrap [shared.ErrNetwork]; non-2xx responses become a
// [*RemoteError] carrying the status and body; undecodable success bodies
// wrap [shared.ErrParse].
func (s *JellyfinService) doRequest(ctx context.Context, method, path string, query url.Values, body, result any) error {
	if err := s.checkConfig(); err != nil {
		return err
	}

	apiURL := s.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Emby-Authorization", s.authHeader())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrParse, err)
		}
	}

	return nil
}

// itemsEnvelope is the `{Items: [...]}` wrapper most listing endpoints use.
type itemsEnvelope struct {
	Items []models.MediaItem `json:"Items"`
}

type namedEnvelope struct {
	Items []struct {
		Name string `json:"Name"`
	} `json:"Items"`
}

// ListUsers retrieves the server's user accounts.
//
// The users endpoint returns a bare array on current servers and an
// `{Items: [...]}` envelope on some older ones; parseUsers handles both as
// an explicit parse step rather than shape-sniffing at call sites.
func (s *JellyfinService) ListUsers(ctx context.Context) ([]models.User, error) {
	var raw json.RawMessage
	if err := s.doRequest(ctx, http.MethodGet, "/Users", nil, nil, &raw); err != nil {
		return nil, err
	}
	return parseUsers(raw)
}

func parseUsers(data []byte) ([]models.User, error) {
	var users []models.User
	if err := json.Unmarshal(data, &users); err == nil {
		return users, nil
	}

	var envelope struct {
		Items []models.User `json:"Items"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: user list is neither an array nor an Items envelope", shared.ErrParse)
	}
	return envelope.Items, nil
}

func kindsParam(kinds []models.Kind) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ",")
}

// itemQuery translates a normalized filter spec into the item endpoint's
// query parameters. Year bounds become premiere-date bounds (Jan 1 and
// Dec 31 of the respective years); an inverted range is sent as-is.
func (s *JellyfinService) itemQuery(spec filters.Spec) url.Values {
	query := url.Values{}
	query.Set("IncludeItemTypes", kindsParam(spec.Kinds))
	query.Set("Recursive", "true")
	query.Set("EnableImageTypes", "Primary,Backdrop")
	query.Set("Limit", queryLimit)
	query.Set("Fields", itemFields)

	if spec.MinRating > 0 {
		query.Set("MinCommunityRating", fmt.Sprintf("%g", spec.MinRating))
	}
	if spec.YearFrom > 0 {
		from := time.Date(spec.YearFrom, time.January, 1, 0, 0, 0, 0, time.UTC)
		query.Set("minPremiereDate", from.Format(time.RFC3339))
	}
	if spec.YearTo > 0 {
		to := time.Date(spec.YearTo, time.December, 31, 0, 0, 0, 0, time.UTC)
		query.Set("maxPremiereDate", to.Format(time.RFC3339))
	}
	if len(spec.Genres) > 0 {
		query.Set("Genres", strings.Join(spec.Genres, "|"))
	}
	if len(spec.Studios) > 0 {
		query.Set("Studios", strings.Join(spec.Studios, "|"))
	}
	if spec.SearchTerm != "" {
		query.Set("SearchTerm", spec.SearchTerm)
	}
	if spec.UserID != "" {
		query.Set("UserId", spec.UserID)
	}

	return query
}

// QueryItems runs the item query described by spec.
func (s *JellyfinService) QueryItems(ctx context.Context, spec filters.Spec) ([]models.MediaItem, error) {
	var envelope itemsEnvelope
	if err := s.doRequest(ctx, http.MethodGet, "/Items", s.itemQuery(spec), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// GenreNames lists genre names scoped to the given kinds.
func (s *JellyfinService) GenreNames(ctx context.Context, kinds []models.Kind) ([]string, error) {
	query := url.Values{}
	query.Set("IncludeItemTypes", kindsParam(kinds))
	query.Set("Recursive", "true")

	var envelope namedEnvelope
	if err := s.doRequest(ctx, http.MethodGet, "/Genres", query, nil, &envelope); err != nil {
		return nil, err
	}

	names := make([]string, len(envelope.Items))
	for i, item := range envelope.Items {
		names[i] = item.Name
	}
	return names, nil
}

// ItemStudioNames derives unique studio names from a bulk item query.
// The studio listing endpoint ignores kind scoping, so this is the primary
// strategy for a kind-scoped studio vocabulary.
func (s *JellyfinService) ItemStudioNames(ctx context.Context, kinds []models.Kind) ([]string, error) {
	query := url.Values{}
	query.Set("IncludeItemTypes", kindsParam(kinds))
	query.Set("Recursive", "true")
	query.Set("Fields", "Studios")
	query.Set("Limit", queryLimit)

	var envelope itemsEnvelope
	if err := s.doRequest(ctx, http.MethodGet, "/Items", query, nil, &envelope); err != nil {
		return nil, err
	}

	var names []string
	seen := make(map[string]bool)
	for _, item := range envelope.Items {
		for _, studio := range item.Studios {
			if studio.Name != "" && !seen[studio.Name] {
				seen[studio.Name] = true
				names = append(names, studio.Name)
			}
		}
	}
	return names, nil
}

// StudioNames lists all studio names, unscoped. Used as the fallback when
// the item-derived strategy fails.
func (s *JellyfinService) StudioNames(ctx context.Context) ([]string, error) {
	var envelope namedEnvelope
	if err := s.doRequest(ctx, http.MethodGet, "/Studios", nil, nil, &envelope); err != nil {
		return nil, err
	}

	names := make([]string, len(envelope.Items))
	for i, item := range envelope.Items {
		names[i] = item.Name
	}
	return names, nil
}

// playlistUser mirrors the Users entry of the playlist creation body.
type playlistUser struct {
	UserID  string `json:"UserId"`
	CanEdit bool   `json:"CanEdit"`
}

type playlistCreateBody struct {
	Name        string         `json:"Name"`
	Description string         `json:"Description"`
	UserID      string         `json:"UserId,omitempty"`
	Users       []playlistUser `json:"Users"`
	IsPublic    bool           `json:"IsPublic"`
	MediaType   string         `json:"MediaType"`
	IDs         []string       `json:"Ids"`
}

// CreatePlaylist creates a playlist from the draft and returns the server's
// playlist id. The draft's item ids are included in the creation body.
func (s *JellyfinService) CreatePlaylist(ctx context.Context, draft models.PlaylistDraft) (string, error) {
	body := playlistCreateBody{
		Name:        draft.Name,
		Description: draft.Description,
		UserID:      draft.UserID,
		Users:       []playlistUser{},
		IsPublic:    draft.IsPublic,
		MediaType:   draft.MediaType,
		IDs:         draft.ItemIDs,
	}
	if draft.UserID != "" {
		body.Users = []playlistUser{{UserID: draft.UserID, CanEdit: draft.CanEdit}}
	}

	var result struct {
		ID string `json:"Id"`
	}
	if err := s.doRequest(ctx, http.MethodPost, "/Playlists", nil, body, &result); err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", fmt.Errorf("%w: playlist response has no Id", shared.ErrParse)
	}

	return result.ID, nil
}

// AddToPlaylist appends items to an existing playlist.
func (s *JellyfinService) AddToPlaylist(ctx context.Context, playlistID string, itemIDs []string) error {
	if playlistID == "" {
		return shared.ErrMissingPlaylistID
	}

	body := struct {
		IDs []string `json:"Ids"`
	}{IDs: itemIDs}

	path := fmt.Sprintf("/Playlists/%s/Items", url.PathEscape(playlistID))
	return s.doRequest(ctx, http.MethodPost, path, nil, body, nil)
}

// ItemImageURL builds the primary-image URL for an item, or "" when the item
// has no primary image ref.
func (s *JellyfinService) ItemImageURL(item models.MediaItem, width, height int) string {
	if item.PrimaryImageRef() == "" {
		return ""
	}
	return fmt.Sprintf("%s/Items/%s/Images/Primary?width=%d&height=%d", s.baseURL, url.PathEscape(item.ID), width, height)
}

// PlaylistWebURL builds the web UI address of a playlist, for opening in the
// browser after a save.
func (s *JellyfinService) PlaylistWebURL(playlistID string) string {
	return fmt.Sprintf("%s/web/#/details?id=%s", s.baseURL, url.QueryEscape(playlistID))
}

var _ MediaServer = (*JellyfinService)(nil)
