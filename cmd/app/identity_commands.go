package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pib/cmd/app/commands"
	"github.com/allisson/pib/internal/app"
	"github.com/allisson/pib/internal/config"
)

func getIdentityCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "add-identity",
			Usage: "Register an identity in the credential store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Identity name URI (e.g., /alice)",
				},
				&cli.BoolFlag{
					Name:    "default",
					Aliases: []string{"d"},
					Value:   false,
					Usage:   "Also make this identity the store default",
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

				useCase, err := container.PibUseCase()
				if err != nil {
					return err
				}

				return commands.RunAddIdentity(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.Bool("default"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "set-default-identity",
			Usage: "Make an identity the store default, registering it if needed",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Identity name URI (e.g., /alice)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.PibUseCase()
				if err != nil {
					return err
				}

				return commands.RunAddIdentity(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					true,
					"text",
				)
			},
		},
		{
			Name:  "delete-identity",
			Usage: "Delete an identity with its keys and certificates",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Identity name URI (e.g., /alice)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.PibUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeleteIdentity(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
				)
			},
		},
	}
}
