package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunDeleteIdentity removes an identity together with its keys and
// certificates.
func RunDeleteIdentity(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
) error {
	identityName, err := parseNameFlag("name", name)
	if err != nil {
		return err
	}

	logger.Info("deleting identity", slog.String("identity", identityName.URI()))

	if err := useCase.DeleteIdentity(ctx, identityName); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Identity deleted: %s\n", identityName.URI())
	return nil
}
