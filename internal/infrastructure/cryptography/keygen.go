package cryptography

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/logger"
)

// DefaultPublicExponent is the preferred public exponent (F4).
const DefaultPublicExponent = 65537

// MinKeySize is the smallest modulus size for which two distinct primes of half the size exist.
const MinKeySize = 6

// attemptsPerBit sizes the default prime sampling budget. Roughly one in
// 0.35*bits odd candidates is prime, so 40*bits attempts only run out on a broken random source.
const attemptsPerBit = 40

// KeyGeneratorOption configures a key generator.
type KeyGeneratorOption func(*keyGenerator)

// WithObserver attaches a diagnostic sink that receives p, q, n, e and d.
func WithObserver(observer cryptoalg.KeyGenObserver) KeyGeneratorOption {
	return func(g *keyGenerator) {
		g.observer = observer
	}
}

// WithMaxPrimeAttempts caps the number of candidates tried per prime.
// Zero or less selects the default of 40 attempts per bit.
func WithMaxPrimeAttempts(attempts int) KeyGeneratorOption {
	return func(g *keyGenerator) {
		g.maxAttempts = attempts
	}
}

// keyGenerator implements cryptoalg.KeyGenerator
type keyGenerator struct {
	random      io.Reader
	tester      cryptoalg.PrimalityTester
	maxAttempts int
	observer    cryptoalg.KeyGenObserver
	logger      logger.Logger
}

// NewKeyGenerator creates a key generator sampling candidates from random and testing them with tester.
func NewKeyGenerator(random io.Reader, tester cryptoalg.PrimalityTester, logger logger.Logger, opts ...KeyGeneratorOption) (cryptoalg.KeyGenerator, error) {
	if random == nil {
		return nil, errors.New("random source cannot be nil")
	}
	if tester == nil {
		return nil, errors.New("primality tester cannot be nil")
	}

	g := &keyGenerator{
		random: NewLockedReader(random),
		tester: tester,
		logger: logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// GeneratePrime returns a probable prime of exactly bits bits.
func (g *keyGenerator) GeneratePrime(ctx context.Context, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: prime bit length must be at least 2, got %d", cryptoalg.ErrInvalidKeySize, bits)
	}

	budget := g.attemptBudget(bits)
	for attempt := 0; attempt < budget; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("prime generation aborted after %d attempts: %w", attempt, err)
		}

		candidate, err := randomOddWithTopBit(g.random, bits)
		if err != nil {
			return nil, err
		}

		isPrime, err := g.tester.IsProbablePrime(candidate)
		if err != nil {
			return nil, err
		}
		if isPrime {
			return candidate, nil
		}
	}

	return nil, fmt.Errorf("%w: no %d-bit prime after %d attempts", cryptoalg.ErrPrimalityExhaustion, bits, budget)
}

// GenerateKeyPair builds an RSA key pair with a keySize-bit modulus.
func (g *keyGenerator) GenerateKeyPair(ctx context.Context, keySize int) (*cryptoalg.KeyPair, error) {
	if keySize < MinKeySize || keySize%2 != 0 {
		return nil, fmt.Errorf("%w: key size must be even and at least %d bits, got %d", cryptoalg.ErrInvalidKeySize, MinKeySize, keySize)
	}

	primeBits := keySize / 2
	p, err := g.GeneratePrime(ctx, primeBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate prime p: %w", err)
	}
	g.emit(cryptoalg.StagePrimeP, p)

	q, err := g.generateDistinctPrime(ctx, primeBits, p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate prime q: %w", err)
	}
	g.emit(cryptoalg.StagePrimeQ, q)

	keyPair, err := NewKeyPair(p, q, nil)
	if err != nil {
		return nil, err
	}
	g.emit(cryptoalg.StageModulus, keyPair.Public.N)
	g.emit(cryptoalg.StagePublicExponent, keyPair.Public.E)
	g.emit(cryptoalg.StagePrivateExponent, keyPair.Private.D)

	g.logger.Info(fmt.Sprintf("Generated %d-bit RSA key pair", keyPair.Public.BitLen()))
	return keyPair, nil
}

func (g *keyGenerator) generateDistinctPrime(ctx context.Context, bits int, other *big.Int) (*big.Int, error) {
	budget := g.attemptBudget(bits)
	for attempt := 0; attempt < budget; attempt++ {
		q, err := g.GeneratePrime(ctx, bits)
		if err != nil {
			return nil, err
		}
		if q.Cmp(other) != 0 {
			return q, nil
		}
	}
	return nil, fmt.Errorf("%w: no %d-bit prime distinct from p after %d draws", cryptoalg.ErrPrimalityExhaustion, bits, budget)
}

func (g *keyGenerator) attemptBudget(bits int) int {
	if g.maxAttempts > 0 {
		return g.maxAttempts
	}
	return attemptsPerBit * bits
}

func (g *keyGenerator) emit(stage cryptoalg.KeyGenStage, value *big.Int) {
	if g.observer != nil {
		g.observer(cryptoalg.KeyGenEvent{Stage: stage, Value: new(big.Int).Set(value)})
	}
}

// NewKeyPair assembles a key pair from two distinct primes p and q.
// A nil e selects 65537 when it is coprime to and below φ(n), and otherwise
// the smallest odd e >= 3 coprime to φ(n). An explicit e must satisfy 1 < e < φ(n) and gcd(e, φ(n)) = 1.
func NewKeyPair(p, q, e *big.Int) (*cryptoalg.KeyPair, error) {
	if p.Cmp(q) == 0 {
		return nil, errors.New("primes p and q must be distinct")
	}
	if p.Cmp(bigTwo) < 0 || q.Cmp(bigTwo) < 0 {
		return nil, errors.New("primes p and q must be at least 2")
	}

	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, bigOne),
		new(big.Int).Sub(q, bigOne),
	)

	if e == nil {
		var err error
		if e, err = choosePublicExponent(phi); err != nil {
			return nil, err
		}
	} else {
		if e.Cmp(bigOne) <= 0 || e.Cmp(phi) >= 0 {
			return nil, fmt.Errorf("public exponent %s not in (1, φ(n))", e)
		}
		e = new(big.Int).Set(e)
	}

	d, err := ModInverse(e, phi)
	if err != nil {
		return nil, fmt.Errorf("failed to derive private exponent: %w", err)
	}

	return &cryptoalg.KeyPair{
		Public:  &cryptoalg.PublicKey{E: e, N: n},
		Private: &cryptoalg.PrivateKey{D: d, N: new(big.Int).Set(n)},
	}, nil
}

func choosePublicExponent(phi *big.Int) (*big.Int, error) {
	e := big.NewInt(DefaultPublicExponent)
	if e.Cmp(phi) < 0 && GCD(e, phi).Cmp(bigOne) == 0 {
		return e, nil
	}

	for e = big.NewInt(3); e.Cmp(phi) < 0; e.Add(e, bigTwo) {
		if GCD(e, phi).Cmp(bigOne) == 0 {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: no public exponent coprime to φ(n) = %s", cryptoalg.ErrNoModularInverse, phi)
}
