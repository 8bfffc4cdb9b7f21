package main

import (
	"context"

	"github.com/dirtflix/dfx/internal/filters"
	"github.com/dirtflix/dfx/internal/taxonomy"
	"github.com/urfave/cli/v3"
)

// TaxonomyGenres lists the admissible genre vocabulary for the selected kinds.
func (r *Runner) TaxonomyGenres(ctx context.Context, cmd *cli.Command) error {
	kinds, err := filters.ParseKinds(cmd.StringSlice("kind"))
	if err != nil {
		return err
	}

	r.logger.Info("loading genre vocabulary", "kinds", kinds)

	loader := taxonomy.NewLoader(r.server)
	genres, err := loader.Genres(ctx, kinds)
	if err != nil {
		r.logger.Warn("genre vocabulary unavailable, using built-in samples", "error", err)
		genres = taxonomy.SampleGenres
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, true)
	}

	r.writePlainHeader("Genres")
	for _, genre := range genres {
		r.writePlain("%s\n", genre)
	}
	r.writePlain("\n%d genres\n", len(genres))

	return nil
}

// TaxonomyStudios lists the admissible studio vocabulary for the selected kinds.
func (r *Runner) TaxonomyStudios(ctx context.Context, cmd *cli.Command) error {
	kinds, err := filters.ParseKinds(cmd.StringSlice("kind"))
	if err != nil {
		return err
	}

	r.logger.Info("loading studio vocabulary", "kinds", kinds)

	loader := taxonomy.NewLoader(r.server)
	studios, err := loader.Studios(ctx, kinds)
	if err != nil {
		r.logger.Warn("studio vocabulary unavailable, using built-in samples", "error", err)
		studios = taxonomy.SampleStudios
	}

	if cmd.Bool("json") {
		return r.writeJSON(studios, true)
	}

	r.writePlainHeader("Studios")
	for _, studio := range studios {
		r.writePlain("%s\n", studio)
	}
	r.writePlain("\n%d studios\n", len(studios))

	return nil
}
