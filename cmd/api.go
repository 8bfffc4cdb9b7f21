package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dirtflix/dfx/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the media server
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")

	r.logger.Info("GET request", "path", path)

	body, err := r.api.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		r.output.Write(body)
		r.output.Write([]byte("\n"))
		return nil
	}

	return r.writeJSON(data, cmd.Bool("pretty"))
}

// APIPost makes a direct POST request to the media server
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	var jsonTest any
	if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Info("POST request", "path", path)

	body, err := r.api.Do(ctx, http.MethodPost, path, bytes.NewReader([]byte(data)))
	if err != nil {
		return err
	}

	if len(body) == 0 {
		r.writePlain("✓ request accepted (empty response)\n")
		return nil
	}

	var response any
	if err := json.Unmarshal(body, &response); err != nil {
		r.output.Write(body)
		r.output.Write([]byte("\n"))
		return nil
	}

	return r.writeJSON(response, true)
}
