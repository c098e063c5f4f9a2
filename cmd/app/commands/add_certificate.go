package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/allisson/pib/internal/ndn"
	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunAddCertificate registers a certificate from its encoded wire file,
// creating the owning identity if needed.
func RunAddCertificate(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	certificateFile string,
) error {
	wire, err := os.ReadFile(certificateFile)
	if err != nil {
		return fmt.Errorf("failed to read certificate file: %w", err)
	}

	cert, err := ndn.DecodeCertificate(wire)
	if err != nil {
		return fmt.Errorf("invalid certificate encoding: %w", err)
	}

	logger.Info("adding certificate", slog.String("certificate", cert.Name.URI()))

	if err := useCase.AddCertificate(ctx, cert); err != nil {
		return fmt.Errorf("failed to add certificate: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Certificate added: %s\n", cert.Name.URI())
	return nil
}
