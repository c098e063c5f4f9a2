package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunDeleteKey removes a key together with its certificates.
func RunDeleteKey(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
) error {
	keyName, err := parseNameFlag("name", name)
	if err != nil {
		return err
	}

	logger.Info("deleting key", slog.String("key", keyName.URI()))

	if err := useCase.DeleteKey(ctx, keyName); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Key deleted: %s\n", keyName.URI())
	return nil
}
