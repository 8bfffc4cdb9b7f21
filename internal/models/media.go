package models

import "strings"

// Kind enumerates the media kinds dfx curates. Values match the server's
// IncludeItemTypes / Type strings.
type Kind string

const (
	KindMovie  Kind = "Movie"
	KindSeries Kind = "Series"
	KindAudio  Kind = "Audio"
)

// KnownKinds is the full kind set, used when taxonomy loading is requested
// with no explicit selection.
var KnownKinds = []Kind{KindMovie, KindSeries, KindAudio}

// ParseKind maps a kind name (case-insensitive, with common aliases) to a
// [Kind]. Returns false for unknown names.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "movie", "movies":
		return KindMovie, true
	case "series", "tv", "show", "shows":
		return KindSeries, true
	case "audio", "music":
		return KindAudio, true
	default:
		return "", false
	}
}

// Label returns the display name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindMovie:
		return "Movie"
	case KindSeries:
		return "TV Series"
	case KindAudio:
		return "Audio"
	default:
		return string(k)
	}
}

// Studio represents one studio entry on a media item.
type Studio struct {
	Name string `json:"Name"`
}

// MediaItem represents one server-side catalog entry.
//
// Items are immutable from the client's perspective: the id is never
// regenerated, and two items with the same id are the same logical item
// regardless of field differences.
type MediaItem struct {
	ID              string            `json:"Id"`
	Name            string            `json:"Name"`
	Kind            Kind              `json:"Type"`
	ProductionYear  int               `json:"ProductionYear,omitempty"`
	CommunityRating float64           `json:"CommunityRating,omitempty"`
	CriticRating    float64           `json:"CriticRating,omitempty"`
	Genres          []string          `json:"Genres,omitempty"`
	Studios         []Studio          `json:"Studios,omitempty"`
	Overview        string            `json:"Overview,omitempty"`
	Taglines        []string          `json:"Taglines,omitempty"`
	ImageTags       map[string]string `json:"ImageTags,omitempty"`
}

// PrimaryImageRef returns the opaque primary image tag, or "" when the item
// has no primary image.
func (m MediaItem) PrimaryImageRef() string {
	return m.ImageTags["Primary"]
}

// HasGenre reports whether the item carries the given genre tag.
func (m MediaItem) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// User represents a server-side user account.
type User struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// PlaylistDraft describes a playlist to be created on the server.
type PlaylistDraft struct {
	Name        string
	Description string
	UserID      string
	CanEdit     bool
	IsPublic    bool
	MediaType   string
	ItemIDs     []string
}

// Playlist summarizes a playlist created on the server.
type Playlist struct {
	ID          string
	Name        string
	Description string
	ItemCount   int
	Public      bool
}
