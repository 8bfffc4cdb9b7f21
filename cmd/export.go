package main

import (
	"context"
	"fmt"

	"github.com/dirtflix/dfx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export fetches items matching the filter flags and writes them to disk.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	raw := r.rawFilters(cmd)
	format := cmd.String("format")
	name := cmd.String("name")

	r.logger.Info("exporting", "format", format, "kinds", raw.Kinds)

	fetched, err := r.engine.Fetch(ctx, nil, raw)
	if err != nil {
		return err
	}
	if fetched.Fetched == 0 {
		return fmt.Errorf("%w: no items matched the filters", shared.ErrEmptyCollection)
	}

	r.engine.Curator().Transfer()

	result, err := r.engine.Export(ctx, nil, name, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.writePlainHeader("Export Complete!")
	for _, file := range result.Files {
		r.writePlain("✓ %s\n", file)
	}

	return nil
}
