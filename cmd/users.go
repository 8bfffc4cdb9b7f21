package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Users lists the server's user accounts.
func (r *Runner) Users(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("listing users")

	users, err := r.server.ListUsers(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(users, true)
	}

	r.writePlainHeader("Users")
	for _, user := range users {
		r.writePlain("%s  %s\n", user.ID, user.Name)
	}
	r.writePlain("\n%d users\n", len(users))

	return nil
}
