package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/repositories"
	"github.com/dirtflix/dfx/internal/shared"
	"github.com/dirtflix/dfx/internal/views"
	"github.com/urfave/cli/v3"
)

// openDatabase opens the cache database named by the config file. The caller
// owns the returned handle.
func (r *Runner) openDatabase(configPath string) (*sql.DB, error) {
	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		}
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	return db, nil
}

func (r *Runner) openPlaylistRepository(configPath string) (*repositories.PlaylistRepository, *sql.DB, error) {
	db, err := r.openDatabase(configPath)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewPlaylistRepository(db), db, nil
}

// CacheList lists locally cached items.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewItemRepository(db)

	var cached []*models.CachedItem
	if kindName := cmd.String("kind"); kindName != "" {
		kind, ok := models.ParseKind(kindName)
		if !ok {
			return fmt.Errorf("%w: unknown kind %q", shared.ErrInvalidFlag, kindName)
		}
		cached, err = repo.ListByKind(kind)
	} else {
		cached, err = repo.List()
	}
	if err != nil {
		return err
	}

	items := make([]models.MediaItem, len(cached))
	for i, record := range cached {
		items[i] = record.Item()
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, true)
	}

	r.writePlainHeader("Cached Items")
	for i, card := range views.ProjectList(items) {
		r.writePlain("%3d. %s (%s, %s) [%s]\n", i+1, card.Title, card.KindLabel, card.YearLabel, card.RatingLabel)
	}
	r.writePlain("\n%d items\n", len(items))

	return nil
}

// CacheClear soft-deletes every cached item.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	cleared, err := repositories.NewItemRepository(db).Clear()
	if err != nil {
		return err
	}

	r.writePlain("✓ Cleared %d cached items\n", cleared)
	return nil
}

// CacheStats shows cache counts.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := repositories.NewItemRepository(db).Count()
	if err != nil {
		return err
	}

	playlists, err := repositories.NewPlaylistRepository(db).List()
	if err != nil {
		return err
	}

	r.writePlainHeader("Cache")
	r.writePlain("Items: %d\n", count)
	r.writePlain("Playlists: %d\n", len(playlists))

	return nil
}
