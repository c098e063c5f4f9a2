package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pib/cmd/app/commands"
	"github.com/allisson/pib/internal/app"
	"github.com/allisson/pib/internal/config"
)

func getCertificateCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "add-certificate",
			Usage: "Register a certificate from its encoded wire file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Path to the encoded certificate file",
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

				return commands.RunAddCertificate(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("file"),
				)
			},
		},
		{
			Name:  "set-default-certificate",
			Usage: "Make a certificate the default for a key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Key name URI (e.g., /alice/ksk-1)",
				},
				&cli.StringFlag{
					Name:     "certificate",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Certificate name URI",
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

				return commands.RunSetDefaultCertificate(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("key"),
					cmd.String("certificate"),
				)
			},
		},
		{
			Name:  "delete-certificate",
			Usage: "Delete a certificate by name",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Certificate name URI",
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

				return commands.RunDeleteCertificate(
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
