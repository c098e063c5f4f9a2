package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunSetDefaultCertificate selects the default certificate for a key.
func RunSetDefaultCertificate(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	keyNameStr string,
	certificateNameStr string,
) error {
	keyName, err := parseNameFlag("key", keyNameStr)
	if err != nil {
		return err
	}

	certificateName, err := parseNameFlag("certificate", certificateNameStr)
	if err != nil {
		return err
	}

	logger.Info("setting default certificate",
		slog.String("key", keyName.URI()),
		slog.String("certificate", certificateName.URI()),
	)

	if err := useCase.SetDefaultCertificate(ctx, keyName, certificateName); err != nil {
		return fmt.Errorf("failed to set default certificate: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Default certificate for %s: %s\n", keyName.URI(), certificateName.URI())
	return nil
}
