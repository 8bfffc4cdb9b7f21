package tasks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/dirtflix/dfx/internal/curation"
	"github.com/dirtflix/dfx/internal/filters"
	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/shared"
	dfxtest "github.com/dirtflix/dfx/internal/testing"
)

type recordingCache struct {
	items []models.MediaItem
	err   error
}

func (c *recordingCache) CacheItem(item models.MediaItem) error {
	c.items = append(c.items, item)
	return c.err
}

type recordingRecorder struct {
	playlistIDs []string
	drafts      []models.PlaylistDraft
	err         error
}

func (r *recordingRecorder) RecordPlaylist(serverPlaylistID, userID string, draft models.PlaylistDraft) error {
	r.playlistIDs = append(r.playlistIDs, serverPlaylistID)
	r.drafts = append(r.drafts, draft)
	return r.err
}

func movies(n int) []models.MediaItem {
	items := make([]models.MediaItem, n)
	for i := range items {
		items[i] = models.MediaItem{
			ID:   fmt.Sprintf("m%03d", i),
			Name: fmt.Sprintf("Movie %d", i),
			Kind: models.KindMovie,
		}
	}
	return items
}

func movieRaw() filters.Raw {
	return filters.Raw{Kinds: []string{"movie"}}
}

func TestFetch(t *testing.T) {
	t.Run("ingests results and reports counts", func(t *testing.T) {
		mock := &dfxtest.MockServer{Items: movies(3)}
		cache := &recordingCache{}
		engine := NewCuratorEngine(mock, curation.NewEngine(), cache, nil)

		result, err := engine.Fetch(context.Background(), nil, movieRaw())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Fetched != 3 || result.Added != 3 || result.Duplicates != 0 {
			t.Errorf("unexpected counts: %+v", result)
		}
		if result.Notice != "Added 3 of 3 fetched items" {
			t.Errorf("unexpected notice: %q", result.Notice)
		}
		if engine.Curator().WorkingLen() != 3 {
			t.Errorf("items not ingested: %d", engine.Curator().WorkingLen())
		}
		if len(cache.items) != 3 {
			t.Errorf("items not cached: %d", len(cache.items))
		}
		if len(mock.LastSpec.Kinds) != 1 || mock.LastSpec.Kinds[0] != models.KindMovie {
			t.Errorf("unexpected query spec: %+v", mock.LastSpec)
		}
	})

	t.Run("counts refetched items as duplicates", func(t *testing.T) {
		mock := &dfxtest.MockServer{Items: movies(3)}
		engine := NewCuratorEngine(mock, curation.NewEngine(), nil, nil)

		if _, err := engine.Fetch(context.Background(), nil, movieRaw()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result, err := engine.Fetch(context.Background(), nil, movieRaw())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Added != 0 || result.Duplicates != 3 {
			t.Errorf("unexpected counts: %+v", result)
		}
		if result.Notice != "All 3 fetched items were already selected" {
			t.Errorf("unexpected notice: %q", result.Notice)
		}
	})

	t.Run("empty result carries a notice", func(t *testing.T) {
		engine := NewCuratorEngine(&dfxtest.MockServer{}, curation.NewEngine(), nil, nil)

		result, err := engine.Fetch(context.Background(), nil, movieRaw())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Notice != "No items matched the filters" {
			t.Errorf("unexpected notice: %q", result.Notice)
		}
	})

	t.Run("rejects an empty kind selection before any server call", func(t *testing.T) {
		engine := NewCuratorEngine(&dfxtest.MockServer{}, curation.NewEngine(), nil, nil)

		_, err := engine.Fetch(context.Background(), nil, filters.Raw{})
		if !errors.Is(err, shared.ErrNoKindSelected) {
			t.Errorf("expected ErrNoKindSelected, got %v", err)
		}
	})

	t.Run("cache failures never fail the fetch", func(t *testing.T) {
		mock := &dfxtest.MockServer{Items: movies(2)}
		cache := &recordingCache{err: errors.New("disk full")}
		engine := NewCuratorEngine(mock, curation.NewEngine(), cache, nil)

		if _, err := engine.Fetch(context.Background(), nil, movieRaw()); err != nil {
			t.Fatalf("cache error leaked: %v", err)
		}
	})

	t.Run("emits progress updates on a buffered channel", func(t *testing.T) {
		engine := NewCuratorEngine(&dfxtest.MockServer{Items: movies(1)}, curation.NewEngine(), nil, nil)
		progress := make(chan ProgressUpdate, 8)

		if _, err := engine.Fetch(context.Background(), progress, movieRaw()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) < 2 || phases[0] != FetchItems {
			t.Errorf("unexpected progress phases: %v", phases)
		}
	})
}

func TestRefreshVocabulary(t *testing.T) {
	t.Run("returns filtered server vocabularies", func(t *testing.T) {
		mock := &dfxtest.MockServer{
			Genres:  []string{"Comedy", "FIC123456"},
			Studios: []string{"A24"},
		}
		engine := NewCuratorEngine(mock, curation.NewEngine(), nil, nil)

		result, err := engine.RefreshVocabulary(context.Background(), nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Fallback {
			t.Errorf("fallback should not engage when the server responds")
		}
		if len(result.Genres) != 1 || result.Genres[0] != "Comedy" {
			t.Errorf("unexpected genres: %v", result.Genres)
		}
		if len(result.Studios) != 1 || result.Studios[0] != "A24" {
			t.Errorf("unexpected studios: %v", result.Studios)
		}
	})

	t.Run("falls back to samples when the server is unreachable", func(t *testing.T) {
		mock := &dfxtest.MockServer{Err: errors.New("connection refused")}
		engine := NewCuratorEngine(mock, curation.NewEngine(), nil, nil)

		result, err := engine.RefreshVocabulary(context.Background(), nil, nil)
		if err != nil {
			t.Fatalf("fallback should not surface the error: %v", err)
		}

		if !result.Fallback {
			t.Errorf("fallback flag not set")
		}
		if result.Notice != "Server vocabulary unavailable, using built-in samples" {
			t.Errorf("unexpected notice: %q", result.Notice)
		}
		if len(result.Genres) == 0 || len(result.Studios) == 0 {
			t.Errorf("sample vocabularies missing: %+v", result)
		}
	})
}

func TestSave(t *testing.T) {
	seed := func(mock *dfxtest.MockServer, recorder *recordingRecorder, n int) *CuratorEngine {
		var rec PlaylistRecorder
		if recorder != nil {
			rec = recorder
		}
		engine := NewCuratorEngine(mock, curation.NewEngine(), nil, rec)
		engine.Curator().Ingest(movies(n))
		engine.Curator().Transfer()
		return engine
	}

	t.Run("publishes a small selection in one write", func(t *testing.T) {
		mock := &dfxtest.MockServer{PlaylistID: "pl1"}
		recorder := &recordingRecorder{}
		engine := seed(mock, recorder, 3)

		result, err := engine.Save(context.Background(), nil, models.PlaylistDraft{Name: "Weekend", UserID: "u1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Batches != 1 {
			t.Errorf("expected a single batch, got %d", result.Batches)
		}
		if result.Playlist.ID != "pl1" || result.Playlist.ItemCount != 3 {
			t.Errorf("unexpected playlist: %+v", result.Playlist)
		}
		if len(mock.Created) != 1 || len(mock.Created[0].ItemIDs) != 3 {
			t.Errorf("creation body missing ids: %+v", mock.Created)
		}
		if len(mock.Appended) != 0 {
			t.Errorf("no append calls expected: %+v", mock.Appended)
		}
		if len(recorder.playlistIDs) != 1 || recorder.playlistIDs[0] != "pl1" {
			t.Errorf("playlist not recorded: %+v", recorder.playlistIDs)
		}
		if len(recorder.drafts[0].ItemIDs) != 3 {
			t.Errorf("recorded draft should carry the full id list: %d", len(recorder.drafts[0].ItemIDs))
		}
	})

	t.Run("batches oversized selections", func(t *testing.T) {
		mock := &dfxtest.MockServer{PlaylistID: "pl2"}
		engine := seed(mock, nil, 450)

		result, err := engine.Save(context.Background(), nil, models.PlaylistDraft{Name: "Everything"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Batches != 3 {
			t.Errorf("expected 3 batches, got %d", result.Batches)
		}
		if len(mock.Created[0].ItemIDs) != 200 {
			t.Errorf("creation batch size: %d", len(mock.Created[0].ItemIDs))
		}
		appends := mock.Appended["pl2"]
		if len(appends) != 2 || len(appends[0]) != 200 || len(appends[1]) != 50 {
			t.Errorf("unexpected append batches: %d", len(appends))
		}
		if result.Playlist.ItemCount != 450 {
			t.Errorf("unexpected item count: %d", result.Playlist.ItemCount)
		}
	})

	t.Run("requires a name", func(t *testing.T) {
		engine := seed(&dfxtest.MockServer{}, nil, 1)

		_, err := engine.Save(context.Background(), nil, models.PlaylistDraft{Name: "   "})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("requires a non-empty master collection", func(t *testing.T) {
		engine := NewCuratorEngine(&dfxtest.MockServer{}, curation.NewEngine(), nil, nil)

		_, err := engine.Save(context.Background(), nil, models.PlaylistDraft{Name: "Empty"})
		if !errors.Is(err, shared.ErrEmptyCollection) {
			t.Errorf("expected ErrEmptyCollection, got %v", err)
		}
	})

	t.Run("publishes in display order", func(t *testing.T) {
		mock := &dfxtest.MockServer{}
		engine := NewCuratorEngine(mock, curation.NewEngine(), nil, nil)
		engine.Curator().Ingest([]models.MediaItem{
			{ID: "b", Name: "Bravo", Kind: models.KindMovie},
			{ID: "a", Name: "Alpha", Kind: models.KindMovie},
		})
		engine.Curator().Transfer()
		engine.Curator().Sort(curation.SortAlphabetical)

		if _, err := engine.Save(context.Background(), nil, models.PlaylistDraft{Name: "Sorted"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ids := mock.Created[0].ItemIDs
		if ids[0] != "a" || ids[1] != "b" {
			t.Errorf("ids not in display order: %v", ids)
		}
	})
}

func TestAppend(t *testing.T) {
	t.Run("appends the master collection in batches", func(t *testing.T) {
		mock := &dfxtest.MockServer{}
		engine := NewCuratorEngine(mock, curation.NewEngine(), nil, nil)
		engine.Curator().Ingest(movies(250))
		engine.Curator().Transfer()

		appended, err := engine.Append(context.Background(), nil, "pl9")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if appended != 250 {
			t.Errorf("expected 250 appended, got %d", appended)
		}
		batches := mock.Appended["pl9"]
		if len(batches) != 2 || len(batches[0]) != 200 || len(batches[1]) != 50 {
			t.Errorf("unexpected batches: %d", len(batches))
		}
	})

	t.Run("requires a non-empty master collection", func(t *testing.T) {
		engine := NewCuratorEngine(&dfxtest.MockServer{}, curation.NewEngine(), nil, nil)

		_, err := engine.Append(context.Background(), nil, "pl9")
		if !errors.Is(err, shared.ErrEmptyCollection) {
			t.Errorf("expected ErrEmptyCollection, got %v", err)
		}
	})
}

func TestExport(t *testing.T) {
	seed := func(t *testing.T) *CuratorEngine {
		t.Helper()
		engine := NewCuratorEngine(&dfxtest.MockServer{}, curation.NewEngine(), nil, nil)
		engine.Curator().Ingest(movies(2))
		engine.Curator().Transfer()
		return engine
	}

	t.Run("csv writes an item file and a metadata file", func(t *testing.T) {
		engine := seed(t)
		dir := t.TempDir()

		result, err := engine.Export(context.Background(), nil, "snapshot", "csv", filepath.Join(dir, "out"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Format != "csv" || len(result.Files) != 2 {
			t.Fatalf("unexpected result: %+v", result)
		}
		for _, file := range result.Files {
			dfxtest.AssertFileExists(t, file)
		}
	})

	t.Run("markdown alias normalizes the format", func(t *testing.T) {
		engine := seed(t)

		result, err := engine.Export(context.Background(), nil, "snapshot", "md", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Format != "markdown" || len(result.Files) != 1 {
			t.Fatalf("unexpected result: %+v", result)
		}
		dfxtest.AssertFileExists(t, result.Files[0])
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		engine := seed(t)

		_, err := engine.Export(context.Background(), nil, "snapshot", "xml", t.TempDir())
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("empty master collection is rejected", func(t *testing.T) {
		engine := NewCuratorEngine(&dfxtest.MockServer{}, curation.NewEngine(), nil, nil)

		_, err := engine.Export(context.Background(), nil, "snapshot", "csv", t.TempDir())
		if !errors.Is(err, shared.ErrEmptyCollection) {
			t.Errorf("expected ErrEmptyCollection, got %v", err)
		}
	})
}

func TestCurate(t *testing.T) {
	mock := &dfxtest.MockServer{Items: movies(5), PlaylistID: "pl7"}
	engine := NewCuratorEngine(mock, curation.NewEngine(), nil, nil)

	fetched, saved, err := engine.Curate(context.Background(), nil, movieRaw(), models.PlaylistDraft{Name: "One Shot"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetched.Added != 5 {
		t.Errorf("unexpected fetch result: %+v", fetched)
	}
	if saved.Playlist.ID != "pl7" || saved.Playlist.ItemCount != 5 {
		t.Errorf("unexpected save result: %+v", saved)
	}
	if engine.Curator().WorkingLen() != 0 {
		t.Errorf("working collection should be empty after curate")
	}
}

func TestChunkIDs(t *testing.T) {
	tests := []struct {
		count int
		want  []int
	}{
		{0, []int{0}},
		{1, []int{1}},
		{200, []int{200}},
		{201, []int{200, 1}},
		{450, []int{200, 200, 50}},
	}

	for _, tt := range tests {
		ids := make([]string, tt.count)
		batches := chunkIDs(ids, 200)
		if len(batches) != len(tt.want) {
			t.Errorf("count %d: expected %d batches, got %d", tt.count, len(tt.want), len(batches))
			continue
		}
		for i, size := range tt.want {
			if len(batches[i]) != size {
				t.Errorf("count %d batch %d: expected %d, got %d", tt.count, i, size, len(batches[i]))
			}
		}
	}
}
