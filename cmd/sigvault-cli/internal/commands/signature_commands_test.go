//go:build unit
// +build unit

package commands

import (
	"bytes"
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/testutil"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCommandHandler(t *testing.T) *SignatureCommandHandler {
	t.Helper()

	settings := &config.CryptoSettings{
		DefaultKeySize:    512,
		MillerRabinRounds: 5,
		HashAlgorithm:     config.HashAlgorithmSHA256,
		KeyGenTimeout:     time.Second,
	}
	handler, err := NewSignatureCommandHandler(settings, rand.Reader, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return handler
}

func executeCommand(t *testing.T, handler *SignatureCommandHandler, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "sigvault-cli", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(NewSignatureCommands(handler)...)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func keyFiles(t *testing.T, dir string) (public, private []string) {
	t.Helper()

	public, err := filepath.Glob(filepath.Join(dir, "*-public.key"))
	require.NoError(t, err)
	private, err = filepath.Glob(filepath.Join(dir, "*-private.key"))
	require.NoError(t, err)
	return public, private
}

func TestGenerateKeysCmd(t *testing.T) {
	handler := setupCommandHandler(t)

	t.Run("parallel key pairs", func(t *testing.T) {
		keyDir := t.TempDir()

		out, err := executeCommand(t, handler, "generate-keys", "--key-size", "64", "--key-dir", keyDir, "--count", "3")
		require.NoError(t, err)
		assert.Equal(t, 3, strings.Count(out, "Private key:"))

		public, private := keyFiles(t, keyDir)
		require.Len(t, public, 3)
		require.Len(t, private, 3)

		for i, path := range public {
			publicKey, err := readPublicKeyFile(path)
			require.NoError(t, err)
			privateKey, err := readPrivateKeyFile(strings.TrimSuffix(path, "-public.key") + "-private.key")
			require.NoError(t, err)

			// two 32-bit primes give a 63- or 64-bit modulus
			assert.GreaterOrEqual(t, publicKey.BitLen(), 63, "key %d", i)
			assert.LessOrEqual(t, publicKey.BitLen(), 64, "key %d", i)
			assert.Equal(t, 0, publicKey.N.Cmp(privateKey.N), "key %d shares its modulus", i)
		}

		info, err := os.Stat(private[0])
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("verbose prints intermediate values", func(t *testing.T) {
		out, err := executeCommand(t, handler, "generate-keys", "--key-size", "32", "--key-dir", t.TempDir(), "--verbose")
		require.NoError(t, err)

		for _, stage := range []cryptoalg.KeyGenStage{
			cryptoalg.StagePrimeP, cryptoalg.StagePrimeQ, cryptoalg.StageModulus,
			cryptoalg.StagePublicExponent, cryptoalg.StagePrivateExponent,
		} {
			assert.Contains(t, out, "[key 1] "+string(stage)+" = ")
		}
	})

	t.Run("rejects count below one", func(t *testing.T) {
		_, err := executeCommand(t, handler, "generate-keys", "--key-dir", t.TempDir(), "--count", "0")
		assert.ErrorContains(t, err, "--count")
	})

	t.Run("rejects odd key size", func(t *testing.T) {
		_, err := executeCommand(t, handler, "generate-keys", "--key-size", "63", "--key-dir", t.TempDir())
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidKeySize)
	})
}

func TestSignAndVerifyCmd(t *testing.T) {
	handler := setupCommandHandler(t)

	keyDir := t.TempDir()
	_, err := executeCommand(t, handler, "generate-keys", "--key-size", "128", "--key-dir", keyDir)
	require.NoError(t, err)
	public, private := keyFiles(t, keyDir)
	require.Len(t, public, 1)

	document := testutil.CreateTestFile(t, "contract.txt", []byte("Payment of 100 EUR to Alice"))

	out, err := executeCommand(t, handler, "sign", "--input-file", document, "--private-key", private[0])
	require.NoError(t, err)
	assert.Contains(t, out, document+".sig")

	out, err = executeCommand(t, handler, "verify",
		"--input-file", document, "--signature-file", document+".sig", "--public-key", public[0])
	require.NoError(t, err)
	assert.Contains(t, out, "Signature is valid")

	t.Run("modified document", func(t *testing.T) {
		tampered := testutil.CreateTestFile(t, "contract.txt", []byte("Payment of 900 EUR to Alice"))

		_, err := executeCommand(t, handler, "verify",
			"--input-file", tampered, "--signature-file", document+".sig", "--public-key", public[0])
		assert.ErrorIs(t, err, ErrSignatureInvalid)
	})

	t.Run("malformed key file", func(t *testing.T) {
		badKey := testutil.CreateTestFile(t, "bad.key", []byte("not-a-key"))

		_, err := executeCommand(t, handler, "sign", "--input-file", document, "--private-key", badKey)
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidKeyEncoding)
	})

	t.Run("missing required flag", func(t *testing.T) {
		_, err := executeCommand(t, handler, "sign", "--input-file", document)
		assert.ErrorContains(t, err, "private-key")
	})
}

func TestEncryptAndDecryptCmd(t *testing.T) {
	handler := setupCommandHandler(t)

	publicKey := testutil.CreateTestFile(t, "textbook-public.key", []byte("17:3233"))
	privateKey := testutil.CreateTestFile(t, "textbook-private.key", []byte("2753:3233\n"))

	out, err := executeCommand(t, handler, "encrypt", "--message", "65", "--public-key", publicKey)
	require.NoError(t, err)
	assert.Equal(t, "2790", strings.TrimSpace(out))

	out, err = executeCommand(t, handler, "decrypt", "--ciphertext", "2790", "--private-key", privateKey)
	require.NoError(t, err)
	assert.Equal(t, "65", strings.TrimSpace(out))

	_, err = executeCommand(t, handler, "encrypt", "--message", "3233", "--public-key", publicKey)
	assert.ErrorIs(t, err, cryptoalg.ErrOutOfRange)

	_, err = executeCommand(t, handler, "encrypt", "--message=-1", "--public-key", publicKey)
	assert.ErrorContains(t, err, "--message")
}

func TestHashCmd(t *testing.T) {
	handler := setupCommandHandler(t)
	path := testutil.CreateTestFile(t, "abc.txt", []byte("abc"))

	out, err := executeCommand(t, handler, "hash", path)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  "+path+"\n", out)

	_, err = executeCommand(t, handler, "hash")
	assert.Error(t, err)
}
