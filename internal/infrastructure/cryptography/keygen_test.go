//go:build unit
// +build unit

package cryptography

import (
	"context"
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
	"testing"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rejectingTester struct{}

func (rejectingTester) IsProbablePrime(*big.Int) (bool, error) {
	return false, nil
}

func setupKeyGenerator(t *testing.T, opts ...KeyGeneratorOption) cryptoalg.KeyGenerator {
	t.Helper()
	logger := testutil.SetupTestLogger(t)

	tester, err := NewMillerRabinTester(rand.Reader, DefaultMillerRabinRounds)
	require.NoError(t, err)

	generator, err := NewKeyGenerator(rand.Reader, tester, logger, opts...)
	require.NoError(t, err)
	return generator
}

func seededReader(seed byte) *mrand.ChaCha8 {
	var s [32]byte
	s[0] = seed
	return mrand.NewChaCha8(s)
}

func TestGeneratePrime(t *testing.T) {
	generator := setupKeyGenerator(t)
	reference, err := NewMillerRabinTester(rand.Reader, 20)
	require.NoError(t, err)

	for _, bits := range []int{2, 3, 8, 64, 256} {
		prime, err := generator.GeneratePrime(context.Background(), bits)
		require.NoError(t, err)

		assert.Equal(t, bits, prime.BitLen(), "bits = %d", bits)
		isPrime, err := reference.IsProbablePrime(prime)
		require.NoError(t, err)
		assert.True(t, isPrime, "%s is prime", prime)
	}
}

func TestGeneratePrime_InvalidBits(t *testing.T) {
	generator := setupKeyGenerator(t)

	_, err := generator.GeneratePrime(context.Background(), 1)
	assert.ErrorIs(t, err, cryptoalg.ErrInvalidKeySize)
}

func TestGenerateKeyPair_Invariants(t *testing.T) {
	values := make(map[cryptoalg.KeyGenStage]*big.Int)
	generator := setupKeyGenerator(t, WithObserver(func(event cryptoalg.KeyGenEvent) {
		values[event.Stage] = event.Value
	}))

	for _, keySize := range []int{16, 64, 512} {
		keyPair, err := generator.GenerateKeyPair(context.Background(), keySize)
		require.NoError(t, err)

		p, q := values[cryptoalg.StagePrimeP], values[cryptoalg.StagePrimeQ]
		require.NotNil(t, p)
		require.NotNil(t, q)

		assert.NotEqual(t, 0, p.Cmp(q), "p and q are distinct")
		assert.Equal(t, keySize/2, p.BitLen())
		assert.Equal(t, keySize/2, q.BitLen())

		n := new(big.Int).Mul(p, q)
		assert.Equal(t, 0, n.Cmp(keyPair.Public.N), "n = p*q")
		assert.Equal(t, 0, n.Cmp(keyPair.Private.N))
		assert.Equal(t, 0, n.Cmp(values[cryptoalg.StageModulus]))
		assert.GreaterOrEqual(t, n.BitLen(), keySize-1)
		assert.LessOrEqual(t, n.BitLen(), keySize)

		phi := new(big.Int).Mul(new(big.Int).Sub(p, bigOne), new(big.Int).Sub(q, bigOne))
		e, d := keyPair.Public.E, keyPair.Private.D
		assert.Equal(t, int64(1), GCD(e, phi).Int64(), "gcd(e, φ) = 1")

		ed := new(big.Int).Mul(e, d)
		assert.Equal(t, int64(1), ed.Mod(ed, phi).Int64(), "e*d ≡ 1 mod φ")

		assert.Equal(t, 0, e.Cmp(values[cryptoalg.StagePublicExponent]))
		assert.Equal(t, 0, d.Cmp(values[cryptoalg.StagePrivateExponent]))
	}
}

func TestGenerateKeyPair_DefaultExponent(t *testing.T) {
	generator := setupKeyGenerator(t)

	keyPair, err := generator.GenerateKeyPair(context.Background(), 512)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultPublicExponent), keyPair.Public.E.Int64())
}

func TestGenerateKeyPair_ObserverReceivesCopies(t *testing.T) {
	var captured *big.Int
	generator := setupKeyGenerator(t, WithObserver(func(event cryptoalg.KeyGenEvent) {
		if event.Stage == cryptoalg.StageModulus {
			captured = event.Value
		}
	}))

	keyPair, err := generator.GenerateKeyPair(context.Background(), 64)
	require.NoError(t, err)

	captured.SetInt64(0)
	assert.NotEqual(t, int64(0), keyPair.Public.N.Int64())
}

func TestGenerateKeyPair_InvalidKeySize(t *testing.T) {
	generator := setupKeyGenerator(t)

	for _, keySize := range []int{0, 4, 15, 63} {
		_, err := generator.GenerateKeyPair(context.Background(), keySize)
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidKeySize, "key size %d", keySize)
	}
}

func TestGenerateKeyPair_Exhaustion(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	generator, err := NewKeyGenerator(rand.Reader, rejectingTester{}, logger, WithMaxPrimeAttempts(25))
	require.NoError(t, err)

	_, err = generator.GeneratePrime(context.Background(), 32)
	assert.ErrorIs(t, err, cryptoalg.ErrPrimalityExhaustion)

	_, err = generator.GenerateKeyPair(context.Background(), 64)
	assert.ErrorIs(t, err, cryptoalg.ErrPrimalityExhaustion)
}

func TestGenerateKeyPair_ContextCanceled(t *testing.T) {
	generator := setupKeyGenerator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.GenerateKeyPair(ctx, 512)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateKeyPair_Deterministic(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	generate := func() *cryptoalg.KeyPair {
		tester, err := NewMillerRabinTester(seededReader(1), DefaultMillerRabinRounds)
		require.NoError(t, err)
		generator, err := NewKeyGenerator(seededReader(2), tester, logger)
		require.NoError(t, err)

		keyPair, err := generator.GenerateKeyPair(context.Background(), 128)
		require.NoError(t, err)
		return keyPair
	}

	first, second := generate(), generate()
	assert.Equal(t, first.Public.String(), second.Public.String())
	assert.Equal(t, first.Private.Encode(), second.Private.Encode())
}

func TestGenerateKeyPair_Parallel(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	tester, err := NewMillerRabinTester(seededReader(3), DefaultMillerRabinRounds)
	require.NoError(t, err)
	generator, err := NewKeyGenerator(seededReader(4), tester, logger)
	require.NoError(t, err)

	const workers = 8
	results := make([]*cryptoalg.KeyPair, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = generator.GenerateKeyPair(context.Background(), 128)
		}(i)
	}
	wg.Wait()

	moduli := make(map[string]struct{})
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		moduli[results[i].Public.N.String()] = struct{}{}
	}
	assert.Len(t, moduli, workers)
}

func TestNewKeyPair_FixedPrimes(t *testing.T) {
	keyPair, err := NewKeyPair(big.NewInt(61), big.NewInt(53), big.NewInt(17))
	require.NoError(t, err)

	assert.Equal(t, "17:3233", keyPair.Public.String())
	assert.Equal(t, "2753:3233", keyPair.Private.Encode())
}

func TestNewKeyPair_SmallModulusFallsBackToSmallExponent(t *testing.T) {
	keyPair, err := NewKeyPair(big.NewInt(61), big.NewInt(53), nil)
	require.NoError(t, err)

	// φ = 3120 is below 65537 and divisible by 3 and 5
	assert.Equal(t, int64(7), keyPair.Public.E.Int64())

	ed := new(big.Int).Mul(keyPair.Public.E, keyPair.Private.D)
	assert.Equal(t, int64(1), ed.Mod(ed, big.NewInt(3120)).Int64())
}

func TestNewKeyPair_InvalidInput(t *testing.T) {
	_, err := NewKeyPair(big.NewInt(61), big.NewInt(61), nil)
	assert.Error(t, err)

	_, err = NewKeyPair(big.NewInt(61), big.NewInt(53), big.NewInt(3120))
	assert.Error(t, err)

	_, err = NewKeyPair(big.NewInt(61), big.NewInt(53), big.NewInt(6))
	assert.ErrorIs(t, err, cryptoalg.ErrNoModularInverse)
}

func TestNewKeyGenerator_InvalidArguments(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	_, err := NewKeyGenerator(nil, rejectingTester{}, logger)
	assert.Error(t, err)

	_, err = NewKeyGenerator(rand.Reader, nil, logger)
	assert.Error(t, err)
}
