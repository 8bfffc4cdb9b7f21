// package services defines interface MediaServer for talking to a
// Jellyfin-compatible media server over HTTP
package services

import (
	"context"
	"fmt"

	"github.com/dirtflix/dfx/internal/filters"
	"github.com/dirtflix/dfx/internal/models"
)

// MediaServer is the gateway to the remote server. It is the only component
// that issues network calls; everything else consumes plain data.
type MediaServer interface {
	// ListUsers retrieves the server's user accounts.
	ListUsers(ctx context.Context) ([]models.User, error)

	// QueryItems runs an item query described by a normalized filter spec.
	// Results are capped at 1000 server-side; the cap is a known limitation
	// and not handled specially.
	QueryItems(ctx context.Context, spec filters.Spec) ([]models.MediaItem, error)

	// GenreNames lists genre names scoped to the given kinds.
	GenreNames(ctx context.Context, kinds []models.Kind) ([]string, error)

	// ItemStudioNames derives unique studio names from a bulk item query
	// scoped to the given kinds.
	ItemStudioNames(ctx context.Context, kinds []models.Kind) ([]string, error)

	// StudioNames lists all studio names, unscoped.
	StudioNames(ctx context.Context) ([]string, error)

	// CreatePlaylist creates a playlist from a draft and returns the new
	// playlist's server id.
	CreatePlaylist(ctx context.Context, draft models.PlaylistDraft) (string, error)

	// AddToPlaylist appends items to an existing playlist.
	AddToPlaylist(ctx context.Context, playlistID string, itemIDs []string) error

	// ItemImageURL builds the primary-image URL for an item at the given
	// size, or "" when the item has no primary image.
	ItemImageURL(item models.MediaItem, width, height int) string

	// Name returns the server flavor (e.g. "Jellyfin").
	Name() string
}

// RemoteError is a non-success response from the server. The body is kept
// for diagnostics; it may be empty.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Body)
}
