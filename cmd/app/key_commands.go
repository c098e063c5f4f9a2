package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pib/cmd/app/commands"
	"github.com/allisson/pib/internal/app"
	"github.com/allisson/pib/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "add-key",
			Usage: "Register a public key, creating the owning identity if needed",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Key name URI: identity prefix plus key identifier (e.g., /alice/ksk-1)",
				},
				&cli.StringFlag{
					Name:    "key-type",
					Aliases: []string{"t"},
					Value:   "rsa",
					Usage:   "Key type: rsa, ecdsa, or aes",
				},
				&cli.StringFlag{
					Name:    "public-key-file",
					Aliases: []string{"p"},
					Usage:   "Path to the DER-encoded public key file",
				},
				&cli.StringFlag{
					Name:  "public-key",
					Usage: "Base64-encoded public key bytes (alternative to --public-key-file)",
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

				return commands.RunAddKey(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("key-type"),
					cmd.String("public-key-file"),
					cmd.String("public-key"),
				)
			},
		},
		{
			Name:  "list-keys",
			Usage: "List key names registered under an identity",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "identity",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Identity name URI (e.g., /alice)",
				},
				&cli.BoolFlag{
					Name:    "default-only",
					Aliases: []string{"d"},
					Value:   false,
					Usage:   "List only the default key",
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

				return commands.RunListKeys(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("identity"),
					cmd.Bool("default-only"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "set-default-key",
			Usage: "Make a key the default for its identity",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Key name URI (e.g., /alice/ksk-1)",
				},
				&cli.StringFlag{
					Name:    "identity",
					Aliases: []string{"i"},
					Usage:   "Expected identity prefix; the key name must fall under it",
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

				return commands.RunSetDefaultKey(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("identity"),
				)
			},
		},
		{
			Name:  "update-key-status",
			Usage: "Activate or deactivate a key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Key name URI (e.g., /alice/ksk-1)",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the key should be active",
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

				return commands.RunUpdateKeyStatus(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.Bool("active"),
				)
			},
		},
		{
			Name:  "delete-key",
			Usage: "Delete a key with its certificates",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Key name URI (e.g., /alice/ksk-1)",
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

				return commands.RunDeleteKey(
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
