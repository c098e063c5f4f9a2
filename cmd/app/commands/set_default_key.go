package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/pib/internal/ndn"
	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunSetDefaultKey selects the default key for its identity. When identity is
// provided, the key name must fall under it.
func RunSetDefaultKey(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	identity string,
) error {
	keyName, err := parseNameFlag("name", name)
	if err != nil {
		return err
	}
	if keyName.Size() < 2 {
		return fmt.Errorf("key name must have an identity prefix and a key identifier component")
	}

	identityCheck := keyName.Prefix(-1)
	if identity != "" {
		identityCheck, err = ndn.ParseName(identity)
		if err != nil {
			return fmt.Errorf("invalid identity: %w", err)
		}
	}

	logger.Info("setting default key",
		slog.String("key", keyName.URI()),
		slog.String("identity", identityCheck.URI()),
	)

	if err := useCase.SetDefaultKey(ctx, keyName, identityCheck); err != nil {
		return fmt.Errorf("failed to set default key: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Default key for %s: %s\n", identityCheck.URI(), keyName.URI())
	return nil
}
