package cryptography

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
)

// DefaultMillerRabinRounds is the round count used for prime sampling.
// Each round wrongly accepts a composite with probability at most 1/4,
// so the default false-positive bound is 4^-5 (under 0.1%) per tested candidate.
const DefaultMillerRabinRounds = 5

// millerRabinTester implements cryptoalg.PrimalityTester with the Miller-Rabin test.
// The result is probabilistic: a composite passes all k rounds with probability at most 4^-k.
// Primes are never rejected.
type millerRabinTester struct {
	rounds int
	random io.Reader
}

// NewMillerRabinTester creates a Miller-Rabin tester drawing witnesses from random.
// The random source must be suitable for security-sensitive sampling, e.g. crypto/rand.Reader.
func NewMillerRabinTester(random io.Reader, rounds int) (cryptoalg.PrimalityTester, error) {
	if random == nil {
		return nil, errors.New("random source cannot be nil")
	}
	if rounds < 1 {
		return nil, fmt.Errorf("rounds must be at least 1, got %d", rounds)
	}

	return &millerRabinTester{
		rounds: rounds,
		random: NewLockedReader(random),
	}, nil
}

// IsProbablePrime reports whether n is probably prime.
func (t *millerRabinTester) IsProbablePrime(n *big.Int) (bool, error) {
	if n.Cmp(bigTwo) < 0 {
		return false, nil
	}
	if n.Cmp(big.NewInt(3)) <= 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}

	// n-1 = 2^r * d with d odd
	nMinusOne := new(big.Int).Sub(n, bigOne)
	r := 0
	for nMinusOne.Bit(r) == 0 {
		r++
	}
	d := new(big.Int).Rsh(nMinusOne, uint(r))

	nMinusTwo := new(big.Int).Sub(n, bigTwo)
	for i := 0; i < t.rounds; i++ {
		a, err := randomInRange(t.random, bigTwo, nMinusTwo)
		if err != nil {
			return false, fmt.Errorf("failed to draw Miller-Rabin witness: %w", err)
		}

		x, err := PowerMod(a, d, n)
		if err != nil {
			return false, err
		}
		if x.Cmp(bigOne) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}

		passed := false
		for j := 0; j < r-1; j++ {
			x.Mul(x, x)
			x.Mod(x, n)
			if x.Cmp(nMinusOne) == 0 {
				passed = true
				break
			}
		}
		if !passed {
			return false, nil
		}
	}

	return true, nil
}
