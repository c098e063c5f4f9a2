package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunAddIdentity registers an identity in the credential store. Registering
// an existing identity is a no-op. With setDefault, the identity also becomes
// the store default.
//
// Requirements: Database must be migrated and accessible.
func RunAddIdentity(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	setDefault bool,
	format string,
) error {
	identityName, err := parseNameFlag("name", name)
	if err != nil {
		return err
	}

	logger.Info("adding identity", slog.String("identity", identityName.URI()))

	if setDefault {
		if err := useCase.SetDefaultIdentity(ctx, identityName); err != nil {
			return fmt.Errorf("failed to set default identity: %w", err)
		}
	} else {
		if err := useCase.AddIdentity(ctx, identityName); err != nil {
			return fmt.Errorf("failed to add identity: %w", err)
		}
	}

	if format == "json" {
		outputJSON(map[string]any{
			"identity": identityName.URI(),
			"default":  setDefault,
		}, writer)
	} else {
		_, _ = fmt.Fprintf(writer, "Identity added: %s\n", identityName.URI())
		if setDefault {
			_, _ = fmt.Fprintln(writer, "Set as default identity.")
		}
	}

	return nil
}
