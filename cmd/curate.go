package main

import (
	"context"
	"fmt"

	"github.com/dirtflix/dfx/internal/curation"
	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/shared"
	"github.com/dirtflix/dfx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Curate runs the one-shot pipeline: fetch, optionally conform to required
// genres, transfer, sort, publish.
func (r *Runner) Curate(ctx context.Context, cmd *cli.Command) error {
	raw := r.rawFilters(cmd)
	name := cmd.String("name")

	sortKey, ok := curation.ParseSortKey(cmd.String("sort"))
	if !ok {
		return fmt.Errorf("%w: unknown sort key %q", shared.ErrInvalidFlag, cmd.String("sort"))
	}

	r.logger.Info("starting curation", "name", name, "kinds", raw.Kinds)
	r.writePlain("Curating playlist '%s'...\n\n", name)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchItems:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.CreatePlaylist, tasks.AppendItems:
				r.writePlain("📝 %s\n", update.Message)
			}
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

	if required := cmd.StringSlice("conform-genre"); len(required) > 0 {
		retained, err := r.engine.Curator().ConformToGenres(required)
		if err != nil {
			close(progressCh)
			return err
		}
		r.writePlain("🎞  Kept %d of %d items carrying all required genres\n", retained, fetched.Added)
		if retained == 0 {
			close(progressCh)
			return fmt.Errorf("%w: no fetched items carry all required genres", shared.ErrEmptyCollection)
		}
	}

	r.engine.Curator().Transfer()
	r.engine.Curator().Sort(sortKey)

	draft := models.PlaylistDraft{
		Name:        name,
		Description: cmd.String("description"),
		UserID:      r.config.Server.UserID,
		CanEdit:     true,
		IsPublic:    cmd.Bool("public"),
		MediaType:   r.config.Defaults.MediaType,
	}

	saved, err := r.engine.Save(ctx, progressCh, draft)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Curation Complete!")
	r.writePlain("Playlist: %s (ID: %s)\n", saved.Playlist.Name, saved.Playlist.ID)
	r.writePlain("Items: %d\n", saved.Playlist.ItemCount)
	if saved.Batches > 1 {
		r.writePlain("Server writes: %d\n", saved.Batches)
	}

	if cmd.Bool("open") && r.jellyfin != nil {
		url := r.jellyfin.PlaylistWebURL(saved.Playlist.ID)
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		} else {
			r.writePlain("Opened %s\n", url)
		}
	}

	return nil
}
