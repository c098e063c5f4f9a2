package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunListKeys lists key names under an identity. With defaultOnly, only the
// default key is listed.
func RunListKeys(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	identity string,
	defaultOnly bool,
	format string,
) error {
	identityName, err := parseNameFlag("identity", identity)
	if err != nil {
		return err
	}

	logger.Info("listing keys",
		slog.String("identity", identityName.URI()),
		slog.Bool("default_only", defaultOnly),
	)

	names, err := useCase.ListKeyNames(ctx, identityName, defaultOnly)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if format == "json" {
		uris := make([]string, 0, len(names))
		for _, name := range names {
			uris = append(uris, name.URI())
		}
		outputJSON(map[string]any{
			"identity": identityName.URI(),
			"keys":     uris,
		}, writer)
		return nil
	}

	if len(names) == 0 {
		_, _ = fmt.Fprintf(writer, "No keys found for %s\n", identityName.URI())
		return nil
	}

	_, _ = fmt.Fprintf(writer, "Keys for %s:\n", identityName.URI())
	for _, name := range names {
		_, _ = fmt.Fprintf(writer, "  %s\n", name.URI())
	}

	return nil
}
