package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"

	pibDomain "github.com/allisson/pib/internal/pib/domain"
	pibUseCase "github.com/allisson/pib/internal/pib/usecase"
)

// RunAddKey registers a public key under its identity, creating the identity
// if needed. The key bytes come from a DER file or a base64 string, exactly
// one of which must be provided.
func RunAddKey(
	ctx context.Context,
	useCase pibUseCase.PibUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	keyTypeStr string,
	publicKeyFile string,
	publicKeyBase64 string,
) error {
	keyName, err := parseNameFlag("name", name)
	if err != nil {
		return err
	}
	if keyName.Size() < 2 {
		return fmt.Errorf("key name must have an identity prefix and a key identifier component")
	}

	keyType, ok := pibDomain.ParseKeyType(keyTypeStr)
	if !ok {
		return fmt.Errorf("invalid key type: %s (valid options: rsa, ecdsa, aes)", keyTypeStr)
	}

	publicKey, err := readKeyBytes(publicKeyFile, publicKeyBase64)
	if err != nil {
		return err
	}

	logger.Info("adding key",
		slog.String("key", keyName.URI()),
		slog.String("key_type", keyType.String()),
	)

	if err := useCase.AddKey(ctx, keyName, keyType, publicKey); err != nil {
		return fmt.Errorf("failed to add key: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Key added: %s (%s)\n", keyName.URI(), keyType)
	return nil
}

// readKeyBytes loads public key bytes from a file or a base64 string.
func readKeyBytes(publicKeyFile, publicKeyBase64 string) ([]byte, error) {
	switch {
	case publicKeyFile != "" && publicKeyBase64 != "":
		return nil, fmt.Errorf("provide either a public key file or a base64 value, not both")
	case publicKeyFile != "":
		data, err := os.ReadFile(publicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read public key file: %w", err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("public key file is empty")
		}
		return data, nil
	case publicKeyBase64 != "":
		data, err := base64.StdEncoding.DecodeString(publicKeyBase64)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 public key: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("a public key file or a base64 value is required")
	}
}
