// Package models defines domain entities and persistence interfaces for the dfx playlist curator.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs mirroring the Jellyfin wire shapes
//   - [MediaItem] : One catalog entry (movie, series, or audio)
//   - [User] : Server-side user account
//   - [PlaylistDraft] : Outgoing playlist creation request
//   - [Playlist] : A created playlist summary
//
// 2. Persistent Entities: database-backed cache records
//   - [CachedItem] : Locally cached media items with fetch metadata
//   - [SavedPlaylist] : Record of playlists created on the server through dfx
//
// Persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
