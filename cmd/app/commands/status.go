package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	apperrors "github.com/allisson/pib/internal/errors"
	"github.com/allisson/pib/internal/ndn"
	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunStatus prints the store defaults: the default identity, its default key,
// and that key's default certificate. Missing defaults are reported as unset.
func RunStatus(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("reading store defaults")

	var identityURI, keyURI, certificateURI string

	identityName, err := useCase.DefaultIdentity(ctx)
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
	case err != nil:
		return fmt.Errorf("failed to get default identity: %w", err)
	default:
		identityURI = identityName.URI()
	}

	var keyName ndn.Name
	if identityURI != "" {
		keyName, err = useCase.DefaultKeyName(ctx, identityName)
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
		case err != nil:
			return fmt.Errorf("failed to get default key: %w", err)
		default:
			keyURI = keyName.URI()
		}
	}

	if keyURI != "" {
		certificateName, err := useCase.DefaultCertificateName(ctx, keyName)
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
		case err != nil:
			return fmt.Errorf("failed to get default certificate: %w", err)
		default:
			certificateURI = certificateName.URI()
		}
	}

	if format == "json" {
		outputJSON(map[string]string{
			"default_identity":    identityURI,
			"default_key":         keyURI,
			"default_certificate": certificateURI,
		}, writer)
		return nil
	}

	_, _ = fmt.Fprintf(writer, "Default identity:    %s\n", orUnset(identityURI))
	_, _ = fmt.Fprintf(writer, "Default key:         %s\n", orUnset(keyURI))
	_, _ = fmt.Fprintf(writer, "Default certificate: %s\n", orUnset(certificateURI))
	return nil
}

// orUnset substitutes a placeholder for empty values.
func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
