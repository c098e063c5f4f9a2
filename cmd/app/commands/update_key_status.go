package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunUpdateKeyStatus activates or deactivates a key.
func RunUpdateKeyStatus(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	active bool,
) error {
	keyName, err := parseNameFlag("name", name)
	if err != nil {
		return err
	}

	logger.Info("updating key status",
		slog.String("key", keyName.URI()),
		slog.Bool("active", active),
	)

	if err := useCase.UpdateKeyStatus(ctx, keyName, active); err != nil {
		return fmt.Errorf("failed to update key status: %w", err)
	}

	status := "deactivated"
	if active {
		status = "activated"
	}
	_, _ = fmt.Fprintf(writer, "Key %s: %s\n", status, keyName.URI())
	return nil
}
