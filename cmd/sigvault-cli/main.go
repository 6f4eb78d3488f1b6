// Package main is the entry point for the sigvault-cli application.
// It registers the key generation, signing and raw RSA commands on a cobra root command.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/MGTheTrain/rsa-sign-vault/cmd/sigvault-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "sigvault-cli",
		Short: "Textbook RSA signing tool",
		Long: `sigvault-cli generates textbook RSA key pairs, signs and verifies files
and applies the raw RSA permutation to integers.

Keys are stored as "exponent:modulus" text files. No padding scheme is
applied, so the output is for study and interoperability tests only.

Crypto defaults can be overridden with environment variables, e.g.
SIGVAULT_CRYPTO_DEFAULT_KEY_SIZE, SIGVAULT_CRYPTO_HASH_ALGORITHM and
SIGVAULT_CRYPTO_MILLER_RABIN_ROUNDS.`,
		SilenceUsage: true,
	}

	if err := commands.InitSignatureCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}
