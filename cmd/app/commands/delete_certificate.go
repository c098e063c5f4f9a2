package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunDeleteCertificate removes a certificate by name.
func RunDeleteCertificate(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
) error {
	certificateName, err := parseNameFlag("name", name)
	if err != nil {
		return err
	}

	logger.Info("deleting certificate", slog.String("certificate", certificateName.URI()))

	if err := useCase.DeleteCertificate(ctx, certificateName); err != nil {
		return fmt.Errorf("failed to delete certificate: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Certificate deleted: %s\n", certificateName.URI())
	return nil
}
