// package tasks orchestrates curation sessions against a media server.
//
// The core abstraction is CuratorEngine, which ties the remote gateway, the
// in-memory curation engine, and the local cache together. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/dirtflix/dfx/internal/curation"
	"github.com/dirtflix/dfx/internal/filters"
	"github.com/dirtflix/dfx/internal/formatter"
	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/services"
	"github.com/dirtflix/dfx/internal/shared"
	"github.com/dirtflix/dfx/internal/taxonomy"
)

// appendBatchSize caps the item count of a single playlist write. Larger
// selections are created from the first batch and extended with append
// calls.
const appendBatchSize = 200

// ItemCacher enables automatic item persistence during fetches.
//
// Items are cached silently (errors ignored) to avoid disrupting a session.
type ItemCacher interface {
	CacheItem(item models.MediaItem) error
}

// PlaylistRecorder records playlists created on the server.
type PlaylistRecorder interface {
	RecordPlaylist(serverPlaylistID, userID string, draft models.PlaylistDraft) error
}

// FetchResult contains the outcome of one fetch-and-ingest pass.
type FetchResult struct {
	Fetched    int    // Items returned by the server
	Added      int    // Items new to the working collection
	Duplicates int    // Fetched items the working collection already held
	Notice     string // Human-readable status line
}

// VocabularyResult contains the filtered taxonomy vocabularies.
type VocabularyResult struct {
	Genres   []string
	Studios  []string
	Fallback bool   // True when the built-in sample vocabulary was used
	Notice   string // Set when the fallback engaged
}

// SaveResult contains the outcome of publishing the master collection.
type SaveResult struct {
	Playlist models.Playlist
	Batches  int // Number of server writes used (1 unless batched)
}

// ExportResult contains the files written by an export.
type ExportResult struct {
	Format string
	Files  []string
}

// CuratorEngine orchestrates a curation session: fetching items into the
// working collection, loading vocabularies, publishing the master collection
// as a playlist, and exporting snapshots.
type CuratorEngine struct {
	server   services.MediaServer
	curator  *curation.Engine
	taxonomy *taxonomy.Loader
	cache    ItemCacher       // optional
	recorder PlaylistRecorder // optional
	limiter  *rate.Limiter
}

// NewCuratorEngine creates a CuratorEngine. The cache and recorder are
// optional; pass nil to skip persistence. Server calls are rate limited to
// keep bulk operations polite.
func NewCuratorEngine(server services.MediaServer, curator *curation.Engine, cache ItemCacher, recorder PlaylistRecorder) *CuratorEngine {
	return &CuratorEngine{
		server:   server,
		curator:  curator,
		taxonomy: taxonomy.NewLoader(server),
		cache:    cache,
		recorder: recorder,
		limiter:  rate.NewLimiter(rate.Limit(5), 1),
	}
}

// Curator exposes the underlying curation engine for direct collection
// manipulation (transfer, removal, sorting, conforming).
func (e *CuratorEngine) Curator() *curation.Engine { return e.curator }

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CuratorEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Fetch normalizes raw filter input, queries the server, and ingests the
// results into the working collection. Fetched items are cached when a cache
// is configured; cache failures never fail the fetch.
func (e *CuratorEngine) Fetch(ctx context.Context, progress chan<- ProgressUpdate, raw filters.Raw) (*FetchResult, error) {
	if e.server == nil {
		return nil, fmt.Errorf("%w: media server not initialized", shared.ErrServiceUnavailable)
	}

	spec, err := filters.Normalize(raw)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchItemsUpdate(1, 1))

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	items, err := e.server.QueryItems(ctx, spec)
	if err != nil {
		return nil, err
	}

	added := e.curator.Ingest(items)

	if e.cache != nil {
		for _, item := range items {
			_ = e.cache.CacheItem(item)
		}
	}

	result := &FetchResult{
		Fetched:    len(items),
		Added:      added,
		Duplicates: len(items) - added,
	}

	switch {
	case result.Fetched == 0:
		result.Notice = "No items matched the filters"
	case result.Added == 0:
		result.Notice = fmt.Sprintf("All %d fetched items were already selected", result.Fetched)
	default:
		result.Notice = fmt.Sprintf("Added %d of %d fetched items", result.Added, result.Fetched)
	}

	e.sendProgress(progress, fetchedItemsUpdate(1, 1, result.Added, result.Fetched))
	return result, nil
}

// RefreshVocabulary loads the genre and studio vocabularies for the given
// kinds (all known kinds when none are given). When both server strategies
// fail, the built-in sample vocabulary is returned with a notice instead of
// an error, so the session can continue offline.
func (e *CuratorEngine) RefreshVocabulary(ctx context.Context, progress chan<- ProgressUpdate, kinds []models.Kind) (*VocabularyResult, error) {
	if e.server == nil {
		return nil, fmt.Errorf("%w: media server not initialized", shared.ErrServiceUnavailable)
	}

	result := &VocabularyResult{}

	e.sendProgress(progress, fetchGenresUpdate(1, 2))
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	genres, genreErr := e.taxonomy.Genres(ctx, kinds)

	e.sendProgress(progress, fetchStudiosUpdate(2, 2))
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	studios, studioErr := e.taxonomy.Studios(ctx, kinds)

	if genreErr != nil && studioErr != nil {
		result.Genres = taxonomy.SampleGenres
		result.Studios = taxonomy.SampleStudios
		result.Fallback = true
		result.Notice = "Server vocabulary unavailable, using built-in samples"
		return result, nil
	}

	if genreErr != nil {
		result.Genres = taxonomy.SampleGenres
		result.Fallback = true
		result.Notice = "Genre vocabulary unavailable, using built-in samples"
	} else {
		result.Genres = genres
	}

	if studioErr != nil {
		result.Studios = taxonomy.SampleStudios
		result.Fallback = true
		result.Notice = "Studio vocabulary unavailable, using built-in samples"
	} else {
		result.Studios = studios
	}

	return result, nil
}

// Save publishes the master collection as a playlist on the server, in the
// current display order. Oversized selections are created from the first
// batch and extended with rate-limited append calls.
//
// The draft's item ids are ignored; the master collection is the source of
// truth.
func (e *CuratorEngine) Save(ctx context.Context, progress chan<- ProgressUpdate, draft models.PlaylistDraft) (*SaveResult, error) {
	if e.server == nil {
		return nil, fmt.Errorf("%w: media server not initialized", shared.ErrServiceUnavailable)
	}

	if strings.TrimSpace(draft.Name) == "" {
		return nil, fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}

	ids := e.curator.MasterIDs()
	if len(ids) == 0 {
		return nil, shared.ErrEmptyCollection
	}

	batches := chunkIDs(ids, appendBatchSize)
	draft.ItemIDs = batches[0]

	e.sendProgress(progress, createPlaylistUpdate(1, len(batches), draft.Name))

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	playlistID, err := e.server.CreatePlaylist(ctx, draft)
	if err != nil {
		return nil, err
	}

	for i, batch := range batches[1:] {
		e.sendProgress(progress, appendItemsUpdate(i+2, len(batches), len(batch)))

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		if err := e.server.AddToPlaylist(ctx, playlistID, batch); err != nil {
			return nil, fmt.Errorf("playlist %s created but batch %d failed: %w", playlistID, i+2, err)
		}
	}

	draft.ItemIDs = ids
	if e.recorder != nil {
		_ = e.recorder.RecordPlaylist(playlistID, draft.UserID, draft)
	}

	playlist := models.Playlist{
		ID:          playlistID,
		Name:        draft.Name,
		Description: draft.Description,
		ItemCount:   len(ids),
		Public:      draft.IsPublic,
	}

	e.sendProgress(progress, createdPlaylistUpdate(len(batches), len(batches), &playlist))

	return &SaveResult{Playlist: playlist, Batches: len(batches)}, nil
}

// Append adds the master collection's items to an existing playlist without
// creating a new one.
func (e *CuratorEngine) Append(ctx context.Context, progress chan<- ProgressUpdate, playlistID string) (int, error) {
	if e.server == nil {
		return 0, fmt.Errorf("%w: media server not initialized", shared.ErrServiceUnavailable)
	}

	ids := e.curator.MasterIDs()
	if len(ids) == 0 {
		return 0, shared.ErrEmptyCollection
	}

	batches := chunkIDs(ids, appendBatchSize)
	for i, batch := range batches {
		e.sendProgress(progress, appendItemsUpdate(i+1, len(batches), len(batch)))

		if err := e.limiter.Wait(ctx); err != nil {
			return 0, err
		}
		if err := e.server.AddToPlaylist(ctx, playlistID, batch); err != nil {
			return i * appendBatchSize, err
		}
	}

	return len(ids), nil
}

// Export writes the master collection's current display order to disk in the
// given format (csv, markdown, or txt).
func (e *CuratorEngine) Export(ctx context.Context, progress chan<- ProgressUpdate, name, format, dest string) (*ExportResult, error) {
	items := e.curator.MasterView()
	if len(items) == 0 {
		return nil, shared.ErrEmptyCollection
	}
	if name == "" {
		name = "curated"
	}

	snapshot := &formatter.Snapshot{Name: name, Items: items}
	if e.server != nil {
		snapshot.ImageURL = func(item models.MediaItem) string {
			return e.server.ItemImageURL(item, 300, 450)
		}
	}

	e.sendProgress(progress, exportingUpdate(1, 1, name))

	result := &ExportResult{Format: format}

	switch format {
	case "csv":
		written, err := formatter.WriteCSVExport(snapshot, dest)
		if err != nil {
			return nil, err
		}
		result.Files = []string{written.ItemsFile, written.MetadataFile}
	case "markdown", "md":
		file, err := formatter.WriteMarkdownExport(snapshot, dest)
		if err != nil {
			return nil, err
		}
		result.Format = "markdown"
		result.Files = []string{file}
	case "txt", "text":
		file, err := formatter.WriteTextExport(snapshot, dest)
		if err != nil {
			return nil, err
		}
		result.Format = "txt"
		result.Files = []string{file}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}

	for _, file := range result.Files {
		e.sendProgress(progress, exportCompletedUpdate(1, 1, file))
	}

	return result, nil
}

// Curate runs the one-shot pipeline: fetch with the given filters, transfer
// everything to master, and publish under the draft's name.
func (e *CuratorEngine) Curate(ctx context.Context, progress chan<- ProgressUpdate, raw filters.Raw, draft models.PlaylistDraft) (*FetchResult, *SaveResult, error) {
	fetched, err := e.Fetch(ctx, progress, raw)
	if err != nil {
		return nil, nil, err
	}

	e.curator.Transfer()

	saved, err := e.Save(ctx, progress, draft)
	if err != nil {
		return fetched, nil, err
	}

	return fetched, saved, nil
}

func chunkIDs(ids []string, size int) [][]string {
	var batches [][]string
	for len(ids) > size {
		batches = append(batches, ids[:size])
		ids = ids[size:]
	}
	return append(batches, ids)
}
