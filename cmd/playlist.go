package main

import (
	"context"
	"fmt"

	"github.com/dirtflix/dfx/internal/shared"
	"github.com/dirtflix/dfx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistAppend fetches items matching the filter flags and appends them to
// an existing playlist.
func (r *Runner) PlaylistAppend(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	raw := r.rawFilters(cmd)

	r.logger.Info("appending to playlist", "id", playlistID, "kinds", raw.Kinds)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("📥 %s\n", update.Message)
		}
	}()

	fetched, err := r.engine.Fetch(ctx, progressCh, raw)
	if err != nil {
		close(progressCh)
		return err
	}
	if fetched.Fetched == 0 {
		close(progressCh)
		return fmt.Errorf("%w: no items matched the filters", shared.ErrEmptyCollection)
	}

	r.engine.Curator().Transfer()

	appended, err := r.engine.Append(ctx, progressCh, playlistID)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlainln("✓ Appended %d items to playlist %s", appended, playlistID)
	return nil
}

// PlaylistList shows playlists created through dfx, from the local record.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openPlaylistRepository("config.toml")
	if err != nil {
		return err
	}
	defer db.Close()

	playlists, err := repo.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		summaries := make([]any, len(playlists))
		for i, playlist := range playlists {
			summaries[i] = playlist.Summary()
		}
		return r.writeJSON(summaries, true)
	}

	r.writePlainHeader("Saved Playlists")
	for _, playlist := range playlists {
		summary := playlist.Summary()
		r.writePlain("%s  %s (%d items)\n", summary.ID, summary.Name, summary.ItemCount)
	}
	r.writePlain("\n%d playlists\n", len(playlists))

	return nil
}
