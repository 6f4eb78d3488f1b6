package commands

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/logger"
)

// setupLogger returns a console logger writing to stderr so that command output on stdout stays parseable.
func setupLogger(level string) (logger.Logger, error) {
	settings := config.NewConsoleLoggerSettings(level)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.NewWriterLogger(settings.LogLevel, os.Stderr), nil
}

func readPublicKeyFile(path string) (*cryptoalg.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key file: %w", err)
	}
	return cryptoalg.ParsePublicKey(string(data))
}

func readPrivateKeyFile(path string) (*cryptoalg.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file: %w", err)
	}
	return cryptoalg.ParsePrivateKey(string(data))
}

// parseInteger parses a non-negative decimal integer given on the command line.
func parseInteger(flag, s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("--%s must be a non-negative decimal integer, got %q", flag, s)
	}
	return n, nil
}
