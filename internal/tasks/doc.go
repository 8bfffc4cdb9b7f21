// Package tasks orchestrates curation sessions with real-time progress reporting.
//
// # Core Operations
//
// The [CuratorEngine] ties the pieces of a session together:
//
//  1. [CuratorEngine.Fetch] : Filtered item retrieval
//     - Normalizes raw filter input into a canonical query
//     - Queries the media server and ingests results into the working collection
//     - Caches fetched items locally when a cache is configured
//
//  2. [CuratorEngine.RefreshVocabulary] : Taxonomy loading
//     - Loads genre and studio vocabularies scoped to the selected kinds
//     - Falls back to the built-in sample vocabulary when the server fails
//
//  3. [CuratorEngine.Save] : Publishing
//     - Creates a playlist from the master collection in display order
//     - Extends oversized selections with rate-limited append batches
//     - Records the created playlist locally when a recorder is configured
//
//  4. [CuratorEngine.Export] : Snapshot export to CSV, Markdown, or text
//
//  5. [CuratorEngine.Curate] : One-shot fetch, transfer, and publish pipeline
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Item Caching
//
// The optional [ItemCacher] interface enables automatic item persistence during fetches
//
// Items are cached silently (errors ignored) to avoid disrupting sessions.
// This keeps a local record of everything a session has seen for later export and analysis.
package tasks
