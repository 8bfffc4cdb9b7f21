package models

import (
	"fmt"
	"strings"
	"time"
)

// CachedItem is a locally cached copy of a fetched [MediaItem].
//
// The cache is keyed by the server's item id, so refetching the same item is
// a no-op at the persistence layer (first-seen wins, matching the curation
// engine's merge policy).
type CachedItem struct {
	id           string
	sequence     int
	serverItemID string
	name         string
	kind         Kind
	year         int
	rating       float64
	criticRating float64
	genres       []string
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewCachedItem creates a cache record from a fetched media item.
func NewCachedItem(sequence int, item MediaItem) *CachedItem {
	now := time.Now()
	return &CachedItem{
		sequence:     sequence,
		serverItemID: item.ID,
		name:         item.Name,
		kind:         item.Kind,
		year:         item.ProductionYear,
		rating:       item.CommunityRating,
		criticRating: item.CriticRating,
		genres:       item.Genres,
		createdAt:    now,
		updatedAt:    now,
	}
}

// RestoreCachedItem reconstructs a cache record from database columns.
func RestoreCachedItem(id string, sequence int, serverItemID, name, kind string, year int, rating, criticRating float64, genres string, createdAt, updatedAt time.Time, deletedAt *time.Time) *CachedItem {
	var genreList []string
	if genres != "" {
		genreList = strings.Split(genres, "|")
	}
	return &CachedItem{
		id:           id,
		sequence:     sequence,
		serverItemID: serverItemID,
		name:         name,
		kind:         Kind(kind),
		year:         year,
		rating:       rating,
		criticRating: criticRating,
		genres:       genreList,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		deletedAt:    deletedAt,
	}
}

func (c *CachedItem) ID() string            { return c.id }
func (c *CachedItem) SetID(id string)       { c.id = id }
func (c *CachedItem) Sequence() int         { return c.sequence }
func (c *CachedItem) ServerItemID() string  { return c.serverItemID }
func (c *CachedItem) Name() string          { return c.name }
func (c *CachedItem) Kind() Kind            { return c.kind }
func (c *CachedItem) Year() int             { return c.year }
func (c *CachedItem) Rating() float64       { return c.rating }
func (c *CachedItem) CriticRating() float64 { return c.criticRating }
func (c *CachedItem) Genres() []string      { return c.genres }
func (c *CachedItem) GenresColumn() string  { return strings.Join(c.genres, "|") }
func (c *CachedItem) CreatedAt() time.Time  { return c.createdAt }
func (c *CachedItem) UpdatedAt() time.Time  { return c.updatedAt }

func (c *CachedItem) SetUpdatedAt(t time.Time) { c.updatedAt = t }

// Validate checks required fields before persisting.
func (c *CachedItem) Validate() error {
	if c.id == "" {
		return fmt.Errorf("cached item id is required")
	}
	if c.serverItemID == "" {
		return fmt.Errorf("server item id is required")
	}
	if c.name == "" {
		return fmt.Errorf("item name is required")
	}
	return nil
}

// Item converts the cache record back to a [MediaItem] DTO.
func (c *CachedItem) Item() MediaItem {
	return MediaItem{
		ID:              c.serverItemID,
		Name:            c.name,
		Kind:            c.kind,
		ProductionYear:  c.year,
		CommunityRating: c.rating,
		CriticRating:    c.criticRating,
		Genres:          c.genres,
	}
}

// SavedPlaylist records a playlist created on the server through dfx.
type SavedPlaylist struct {
	id               string
	sequence         int
	serverPlaylistID string
	userID           string
	name             string
	description      string
	itemCount        int
	public           bool
	createdAt        time.Time
	updatedAt        time.Time
	deletedAt        *time.Time
}

// NewSavedPlaylist creates a record for a playlist just created on the server.
func NewSavedPlaylist(sequence int, serverPlaylistID, userID string, draft PlaylistDraft) *SavedPlaylist {
	now := time.Now()
	return &SavedPlaylist{
		sequence:         sequence,
		serverPlaylistID: serverPlaylistID,
		userID:           userID,
		name:             draft.Name,
		description:      draft.Description,
		itemCount:        len(draft.ItemIDs),
		public:           draft.IsPublic,
		createdAt:        now,
		updatedAt:        now,
	}
}

// RestoreSavedPlaylist reconstructs a record from database columns.
func RestoreSavedPlaylist(id string, sequence int, serverPlaylistID, userID, name, description string, itemCount int, public bool, createdAt, updatedAt time.Time, deletedAt *time.Time) *SavedPlaylist {
	return &SavedPlaylist{
		id:               id,
		sequence:         sequence,
		serverPlaylistID: serverPlaylistID,
		userID:           userID,
		name:             name,
		description:      description,
		itemCount:        itemCount,
		public:           public,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		deletedAt:        deletedAt,
	}
}

func (p *SavedPlaylist) ID() string               { return p.id }
func (p *SavedPlaylist) SetID(id string)          { p.id = id }
func (p *SavedPlaylist) Sequence() int            { return p.sequence }
func (p *SavedPlaylist) ServerPlaylistID() string { return p.serverPlaylistID }
func (p *SavedPlaylist) UserID() string           { return p.userID }
func (p *SavedPlaylist) Name() string             { return p.name }
func (p *SavedPlaylist) Description() string      { return p.description }
func (p *SavedPlaylist) ItemCount() int           { return p.itemCount }
func (p *SavedPlaylist) Public() bool             { return p.public }
func (p *SavedPlaylist) CreatedAt() time.Time     { return p.createdAt }
func (p *SavedPlaylist) UpdatedAt() time.Time     { return p.updatedAt }

func (p *SavedPlaylist) SetUpdatedAt(t time.Time) { p.updatedAt = t }

// Validate checks required fields before persisting.
func (p *SavedPlaylist) Validate() error {
	if p.id == "" {
		return fmt.Errorf("saved playlist id is required")
	}
	if p.serverPlaylistID == "" {
		return fmt.Errorf("server playlist id is required")
	}
	if p.name == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}

// Summary converts the record to a [Playlist] DTO.
func (p *SavedPlaylist) Summary() Playlist {
	return Playlist{
		ID:          p.serverPlaylistID,
		Name:        p.name,
		Description: p.description,
		ItemCount:   p.itemCount,
		Public:      p.public,
	}
}
