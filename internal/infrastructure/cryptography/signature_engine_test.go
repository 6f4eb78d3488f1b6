//go:build unit
// +build unit

package cryptography

import (
	"context"
	"crypto/sha256"
	"math/big"
	"sync"
	"testing"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSignatureEngine(t *testing.T, keySize int) cryptoalg.SignatureEngine {
	t.Helper()
	logger := testutil.SetupTestLogger(t)

	engine, err := NewSignatureEngine(setupKeyGenerator(t), setupRSACipher(t), NewSHA256Hash(), keySize, logger)
	require.NoError(t, err)
	return engine
}

func TestSignatureEngine_Unkeyed(t *testing.T) {
	engine := setupSignatureEngine(t, 512)
	assert.Nil(t, engine.KeyPair())

	_, err := engine.Sign([]byte("message"), nil)
	assert.ErrorIs(t, err, cryptoalg.ErrKeyNotSet)

	_, err = engine.Verify([]byte("message"), big.NewInt(1), nil)
	assert.ErrorIs(t, err, cryptoalg.ErrKeyNotSet)
}

func TestSignatureEngine_SignVerify(t *testing.T) {
	engine := setupSignatureEngine(t, 512)

	keyPair, err := engine.GenerateKeys(context.Background())
	require.NoError(t, err)
	assert.Same(t, keyPair, engine.KeyPair())

	message := []byte("This is a test message.")

	t.Run("HeldKey", func(t *testing.T) {
		signature, err := engine.Sign(message, nil)
		require.NoError(t, err)

		valid, err := engine.Verify(message, signature, nil)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("ExplicitKey", func(t *testing.T) {
		signature, err := engine.Sign(message, keyPair.Private)
		require.NoError(t, err)

		valid, err := engine.Verify(message, signature, keyPair.Public)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("TamperedMessage", func(t *testing.T) {
		signature, err := engine.Sign(message, nil)
		require.NoError(t, err)

		valid, err := engine.Verify([]byte("This is a test message!"), signature, nil)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("TamperedSignature", func(t *testing.T) {
		signature, err := engine.Sign(message, nil)
		require.NoError(t, err)

		tampered := new(big.Int).Add(signature, bigOne)
		tampered.Mod(tampered, keyPair.Public.N)
		valid, err := engine.Verify(message, tampered, nil)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("SignatureOutOfRange", func(t *testing.T) {
		valid, err := engine.Verify(message, new(big.Int).Set(keyPair.Public.N), nil)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("OtherKey", func(t *testing.T) {
		other := setupSignatureEngine(t, 512)
		otherKeys, err := other.GenerateKeys(context.Background())
		require.NoError(t, err)

		signature, err := engine.Sign(message, nil)
		require.NoError(t, err)

		valid, err := engine.Verify(message, signature, otherKeys.Public)
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestSignatureEngine_ExplicitKeyWhileUnkeyed(t *testing.T) {
	engine := setupSignatureEngine(t, 512)
	keyPair := textbookKeyPair(t)
	message := []byte("hello")

	signature, err := engine.Sign(message, keyPair.Private)
	require.NoError(t, err)

	sum := sha256.Sum256(message)
	h := new(big.Int).SetBytes(sum[:])
	h.Mod(h, keyPair.Public.N)

	recovered := new(big.Int).Exp(signature, keyPair.Public.E, keyPair.Public.N)
	assert.Equal(t, 0, h.Cmp(recovered), "signature^e mod n = H(m) mod n")

	valid, err := engine.Verify(message, signature, keyPair.Public)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Nil(t, engine.KeyPair())
}

func TestSignatureEngine_RejectsKeysWithoutModulus(t *testing.T) {
	engine := setupSignatureEngine(t, 512)
	message := []byte("x")

	for _, n := range []*big.Int{nil, big.NewInt(0), big.NewInt(-1)} {
		assert.NotPanics(t, func() {
			_, err := engine.Sign(message, &cryptoalg.PrivateKey{D: big.NewInt(3), N: n})
			assert.ErrorIs(t, err, cryptoalg.ErrInvalidModulus, "n = %v", n)

			_, err = engine.Verify(message, big.NewInt(1), &cryptoalg.PublicKey{E: big.NewInt(3), N: n})
			assert.ErrorIs(t, err, cryptoalg.ErrInvalidModulus, "n = %v", n)
		})
	}
}

func TestSignatureEngine_Digest(t *testing.T) {
	engine := setupSignatureEngine(t, 512)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", engine.Digest([]byte("abc")))
}

func TestSignatureEngine_ConcurrentUse(t *testing.T) {
	engine := setupSignatureEngine(t, 512)
	_, err := engine.GenerateKeys(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			message := []byte{byte(i)}
			signature, err := engine.Sign(message, nil)
			if err != nil {
				errs <- err
				return
			}
			if valid, err := engine.Verify(message, signature, nil); err != nil || !valid {
				errs <- assert.AnError
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestNewSignatureEngine_InvalidArguments(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	_, err := NewSignatureEngine(nil, nil, NewSHA256Hash(), 512, logger)
	assert.Error(t, err)

	_, err = NewSignatureEngine(nil, setupRSACipher(t), nil, 512, logger)
	assert.Error(t, err)

	engine, err := NewSignatureEngine(nil, setupRSACipher(t), NewSHA256Hash(), 512, logger)
	require.NoError(t, err)
	_, err = engine.GenerateKeys(context.Background())
	assert.Error(t, err)
}
