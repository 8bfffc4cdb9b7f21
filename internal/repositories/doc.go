// Package repositories implements SQLite persistence for cached media items
// and saved playlists.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [ItemRepository] : Cached media items, keyed by the server's item id
//   - [PlaylistRepository] : Records of playlists created on the server
//
// Sequence numbers provide stable, human-readable ordering (e.g., item #42, playlist #15) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
