package main

import (
	"context"
	"errors"
	"os"

	"github.com/dirtflix/dfx/internal/repositories"
	"github.com/dirtflix/dfx/internal/services"
	"github.com/dirtflix/dfx/internal/shared"
	"github.com/dirtflix/dfx/internal/tasks"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	jellyfin := services.NewJellyfinService(config.Server.URL, config.Server.Token, config.Server.Device, nil)
	if config.Server.UserID != "" {
		jellyfin.SetUser(config.Server.UserID)
	}
	apiService := services.NewAPIService(jellyfin, logger)

	var cache tasks.ItemCacher
	var recorder tasks.PlaylistRecorder
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			cache = repositories.NewItemCacheAdapter(repositories.NewItemRepository(db))
			recorder = repositories.NewPlaylistRecordAdapter(repositories.NewPlaylistRepository(db))
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Server:   jellyfin,
		Jellyfin: jellyfin,
		API:      apiService,
		Logger:   logger,
		Cache:    cache,
		Recorder: recorder,
	})

	app := &cli.Command{
		Name:     "dfx",
		Usage:    "Curate Jellyfin playlists from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
