package commands

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ErrSignatureInvalid is returned by the verify command when the signature does not match.
var ErrSignatureInvalid = errors.New("signature is invalid")

// SignatureCommandHandler encapsulates the textbook RSA operations of the CLI.
type SignatureCommandHandler struct {
	settings *config.CryptoSettings
	random   io.Reader
	tester   cryptoalg.PrimalityTester
	cipher   cryptoalg.RSACipher
	engine   cryptoalg.SignatureEngine
	logger   logger.Logger
}

// NewSignatureCommandHandler wires the cryptographic services used by the commands.
// random is the entropy source for prime sampling and Miller-Rabin witnesses.
func NewSignatureCommandHandler(settings *config.CryptoSettings, random io.Reader, log logger.Logger) (*SignatureCommandHandler, error) {
	if settings == nil {
		return nil, errors.New("crypto settings cannot be nil")
	}
	random = cryptography.NewLockedReader(random)

	tester, err := cryptography.NewMillerRabinTester(random, settings.MillerRabinRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to create primality tester: %w", err)
	}

	generator, err := cryptography.NewKeyGenerator(random, tester, log,
		cryptography.WithMaxPrimeAttempts(settings.MaxPrimeAttempts))
	if err != nil {
		return nil, fmt.Errorf("failed to create key generator: %w", err)
	}

	cipher, err := cryptography.NewRSACipher(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA cipher: %w", err)
	}

	hash, err := cryptography.NewHashFunction(settings.HashAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create hash function: %w", err)
	}

	engine, err := cryptography.NewSignatureEngine(generator, cipher, hash, int(settings.DefaultKeySize), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature engine: %w", err)
	}

	return &SignatureCommandHandler{
		settings: settings,
		random:   random,
		tester:   tester,
		cipher:   cipher,
		engine:   engine,
		logger:   log,
	}, nil
}

// GenerateKeysCmd generates --count key pairs in parallel and writes them to --key-dir.
func (h *SignatureCommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return fmt.Errorf("invalid key-size flag: %w", err)
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return fmt.Errorf("invalid count flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("invalid verbose flag: %w", err)
	}
	if count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", count)
	}
	if err := os.MkdirAll(keyDir, 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	var outMu sync.Mutex
	out := cmd.OutOrStdout()
	printf := func(format string, args ...any) {
		outMu.Lock()
		defer outMu.Unlock()
		fmt.Fprintf(out, format, args...)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	g, ctx := errgroup.WithContext(parent)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			var opts []cryptography.KeyGeneratorOption
			if verbose {
				opts = append(opts, cryptography.WithObserver(func(event cryptoalg.KeyGenEvent) {
					printf("[key %d] %s = %s\n", i+1, event.Stage, event.Value)
				}))
			}
			opts = append(opts, cryptography.WithMaxPrimeAttempts(h.settings.MaxPrimeAttempts))

			generator, err := cryptography.NewKeyGenerator(h.random, h.tester, h.logger, opts...)
			if err != nil {
				return err
			}
			keyPair, err := generator.GenerateKeyPair(ctx, keySize)
			if err != nil {
				return fmt.Errorf("key %d: %w", i+1, err)
			}

			publicPath, privatePath, err := writeKeyPair(keyDir, keyPair)
			if err != nil {
				return err
			}
			printf("Public key:  %s\nPrivate key: %s\n", publicPath, privatePath)
			return nil
		})
	}
	return g.Wait()
}

func writeKeyPair(keyDir string, keyPair *cryptoalg.KeyPair) (string, string, error) {
	id := uuid.NewString()
	publicPath := filepath.Join(keyDir, id+"-public.key")
	privatePath := filepath.Join(keyDir, id+"-private.key")

	if err := os.WriteFile(publicPath, []byte(keyPair.Public.String()), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write public key: %w", err)
	}
	if err := os.WriteFile(privatePath, []byte(keyPair.Private.Encode()), 0o600); err != nil {
		return "", "", fmt.Errorf("failed to write private key: %w", err)
	}
	return publicPath, privatePath, nil
}

// SignCmd signs --input-file with --private-key and writes a base64 .sig file.
func (h *SignatureCommandHandler) SignCmd(cmd *cobra.Command, _ []string) error {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return fmt.Errorf("invalid output-file flag: %w", err)
	}
	privateKeyFile, err := cmd.Flags().GetString("private-key")
	if err != nil {
		return fmt.Errorf("invalid private-key flag: %w", err)
	}
	if outputFile == "" {
		outputFile = inputFile + ".sig"
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	privateKey, err := readPrivateKeyFile(privateKeyFile)
	if err != nil {
		return err
	}

	signature, err := h.engine.Sign(data, privateKey)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, cryptoalg.EncodeSignatureFile(signature), 0o644); err != nil {
		return fmt.Errorf("failed to write signature file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Signature written to %s\n", outputFile)
	return nil
}

// VerifyCmd checks --signature-file against --input-file and --public-key.
// An invalid signature yields ErrSignatureInvalid so the process exits non-zero.
func (h *SignatureCommandHandler) VerifyCmd(cmd *cobra.Command, _ []string) error {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	signatureFile, err := cmd.Flags().GetString("signature-file")
	if err != nil {
		return fmt.Errorf("invalid signature-file flag: %w", err)
	}
	publicKeyFile, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return fmt.Errorf("invalid public-key flag: %w", err)
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	encoded, err := os.ReadFile(signatureFile)
	if err != nil {
		return fmt.Errorf("failed to read signature file: %w", err)
	}
	signature, err := cryptoalg.DecodeSignatureFile(encoded)
	if err != nil {
		return err
	}
	publicKey, err := readPublicKeyFile(publicKeyFile)
	if err != nil {
		return err
	}

	valid, err := h.engine.Verify(data, signature, publicKey)
	if err != nil {
		return err
	}
	if !valid {
		return ErrSignatureInvalid
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Signature is valid")
	return nil
}

// EncryptCmd applies the raw public-key permutation to --message.
func (h *SignatureCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return fmt.Errorf("invalid message flag: %w", err)
	}
	publicKeyFile, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return fmt.Errorf("invalid public-key flag: %w", err)
	}

	plaintext, err := parseInteger("message", message)
	if err != nil {
		return err
	}
	publicKey, err := readPublicKeyFile(publicKeyFile)
	if err != nil {
		return err
	}

	ciphertext, err := h.cipher.Encrypt(plaintext, publicKey)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ciphertext)
	return nil
}

// DecryptCmd applies the raw private-key permutation to --ciphertext.
func (h *SignatureCommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	ciphertextFlag, err := cmd.Flags().GetString("ciphertext")
	if err != nil {
		return fmt.Errorf("invalid ciphertext flag: %w", err)
	}
	privateKeyFile, err := cmd.Flags().GetString("private-key")
	if err != nil {
		return fmt.Errorf("invalid private-key flag: %w", err)
	}

	ciphertext, err := parseInteger("ciphertext", ciphertextFlag)
	if err != nil {
		return err
	}
	privateKey, err := readPrivateKeyFile(privateKeyFile)
	if err != nil {
		return err
	}

	plaintext, err := h.cipher.Decrypt(ciphertext, privateKey)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), plaintext)
	return nil
}

// HashCmd prints the digest of each file argument in sha256sum layout.
func (h *SignatureCommandHandler) HashCmd(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", h.engine.Digest(data), path)
	}
	return nil
}

// NewSignatureCommands builds the command set backed by handler.
func NewSignatureCommands(handler *SignatureCommandHandler) []*cobra.Command {
	generateKeysCmd := &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate textbook RSA key pairs as exponent:modulus files",
		Args:  cobra.NoArgs,
		RunE:  handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().IntP("key-size", "", int(handler.settings.DefaultKeySize), "Modulus size in bits")
	generateKeysCmd.Flags().StringP("key-dir", "", ".", "Directory to store the key files")
	generateKeysCmd.Flags().IntP("count", "", 1, "Number of key pairs to generate in parallel")
	generateKeysCmd.Flags().BoolP("verbose", "v", false, "Print p, q, n, e and d while generating (exposes private material)")

	signCmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a file",
		Args:  cobra.NoArgs,
		RunE:  handler.SignCmd,
	}
	signCmd.Flags().StringP("input-file", "", "", "Path to file which needs to be signed")
	signCmd.Flags().StringP("output-file", "", "", "Path to signature output file (default <input-file>.sig)")
	signCmd.Flags().StringP("private-key", "", "", "Path to private key file")
	markRequired(signCmd, "input-file", "private-key")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the signature of a file",
		Args:  cobra.NoArgs,
		RunE:  handler.VerifyCmd,
	}
	verifyCmd.Flags().StringP("input-file", "", "", "Path to file which needs to be validated")
	verifyCmd.Flags().StringP("signature-file", "", "", "Path to signature input file")
	verifyCmd.Flags().StringP("public-key", "", "", "Path to public key file")
	markRequired(verifyCmd, "input-file", "signature-file", "public-key")

	encryptCmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt an integer with the raw RSA permutation (no padding)",
		Args:  cobra.NoArgs,
		RunE:  handler.EncryptCmd,
	}
	encryptCmd.Flags().StringP("message", "", "", "Decimal integer smaller than the modulus")
	encryptCmd.Flags().StringP("public-key", "", "", "Path to public key file")
	markRequired(encryptCmd, "message", "public-key")

	decryptCmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt an integer with the raw RSA permutation",
		Args:  cobra.NoArgs,
		RunE:  handler.DecryptCmd,
	}
	decryptCmd.Flags().StringP("ciphertext", "", "", "Decimal ciphertext")
	decryptCmd.Flags().StringP("private-key", "", "", "Path to private key file")
	markRequired(decryptCmd, "ciphertext", "private-key")

	hashCmd := &cobra.Command{
		Use:   "hash FILE...",
		Short: "Print the digest of files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  handler.HashCmd,
	}

	return []*cobra.Command{generateKeysCmd, signCmd, verifyCmd, encryptCmd, decryptCmd, hashCmd}
}

func markRequired(cmd *cobra.Command, flags ...string) {
	for _, name := range flags {
		_ = cmd.MarkFlagRequired(name)
	}
}

// InitSignatureCommands registers the signing commands on rootCmd using
// crypto settings from SIGVAULT_CRYPTO_* environment variables.
func InitSignatureCommands(rootCmd *cobra.Command) error {
	settings, err := config.CryptoSettingsFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load crypto settings: %w", err)
	}

	log, err := setupLogger(config.LogLevelWarning)
	if err != nil {
		return err
	}

	handler, err := NewSignatureCommandHandler(settings, rand.Reader, log)
	if err != nil {
		return fmt.Errorf("failed to create signature command handler: %w", err)
	}

	rootCmd.AddCommand(NewSignatureCommands(handler)...)
	return nil
}
