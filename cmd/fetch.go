package main

import (
	"context"

	"github.com/dirtflix/dfx/internal/views"
	"github.com/urfave/cli/v3"
)

// Fetch queries items matching the filter flags and prints them.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	raw := r.rawFilters(cmd)

	r.logger.Info("fetching items", "kinds", raw.Kinds, "genres", raw.Genres, "search", raw.SearchTerm)

	result, err := r.engine.Fetch(ctx, nil, raw)
	if err != nil {
		return err
	}

	items := r.engine.Curator().Working()

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Fetched Items")
	for i, card := range views.ProjectList(items) {
		r.writePlain("%3d. %s (%s, %s) [%s]\n", i+1, card.Title, card.KindLabel, card.YearLabel, card.RatingLabel)
	}
	r.writePlainln("%s", result.Notice)

	return nil
}
