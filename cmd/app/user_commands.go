package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/users/cmd/app/commands"
	"github.com/allisson/users/internal/app"
	"github.com/allisson/users/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "validate-user",
			Usage: "Validate a user JSON document read from stdin",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "min-age",
					Aliases: []string{"m"},
					Value:   -1,
					Usage:   "Minimum age in years (defaults to USER_MIN_AGE, 0 disables the check)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				minAge := cfg.UserMinAge
				if flagValue := int(cmd.Int("min-age")); flagValue >= 0 {
					minAge = flagValue
				}

				return commands.RunValidateUser(
					commands.DefaultIO(),
					container.Logger(),
					time.Now(),
					minAge,
					cmd.String("format"),
				)
			},
		},
	}
}
