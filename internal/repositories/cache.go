package repositories

import (
	"fmt"
	"strings"

	"github.com/dirtflix/dfx/internal/models"
)

// ItemCacheAdapter implements tasks.ItemCacher using ItemRepository.
//
// Provides automatic item caching with deduplication via the server_item_id
// constraint. Duplicate items are silently ignored (UNIQUE constraint
// violations).
type ItemCacheAdapter struct {
	repo *ItemRepository
}

// NewItemCacheAdapter creates a new ItemCacheAdapter with the given repository
func NewItemCacheAdapter(repo *ItemRepository) *ItemCacheAdapter {
	return &ItemCacheAdapter{repo: repo}
}

// CacheItem caches a fetched media item.
// Returns nil if the item already exists (deduplication).
// Only returns errors for actual failures (not constraint violations).
func (a *ItemCacheAdapter) CacheItem(item models.MediaItem) error {
	existing, err := a.repo.GetByServerID(item.ID)
	if err == nil && existing != nil {
		return nil
	}

	cached := models.NewCachedItem(0, item)

	err = a.repo.Create(cached)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache item: %w", err)
	}

	return nil
}

// PlaylistRecordAdapter implements tasks.PlaylistRecorder using
// PlaylistRepository.
type PlaylistRecordAdapter struct {
	repo *PlaylistRepository
}

// NewPlaylistRecordAdapter creates a new PlaylistRecordAdapter with the given repository
func NewPlaylistRecordAdapter(repo *PlaylistRepository) *PlaylistRecordAdapter {
	return &PlaylistRecordAdapter{repo: repo}
}

// RecordPlaylist records a playlist created on the server.
func (a *PlaylistRecordAdapter) RecordPlaylist(serverPlaylistID, userID string, draft models.PlaylistDraft) error {
	record := models.NewSavedPlaylist(0, serverPlaylistID, userID, draft)
	if err := a.repo.Create(record); err != nil {
		return fmt.Errorf("failed to record playlist: %w", err)
	}
	return nil
}
