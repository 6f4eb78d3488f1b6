package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// GCD returns the greatest common divisor of two non-negative integers.
// GCD(a, 0) is a.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)
	for y.Sign() != 0 {
		x.Rem(x, y)
		x, y = y, x
	}
	return x
}

// ExtendedGCD returns (g, x, y) such that a*x + b*y = g = gcd(a, b)
// for non-negative a and b. ExtendedGCD(0, b) is (b, 0, 1).
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	for r.Sign() != 0 {
		q := new(big.Int).Quo(oldR, r)
		oldR, r = r, new(big.Int).Sub(oldR, new(big.Int).Mul(q, r))
		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
		oldT, t = t, new(big.Int).Sub(oldT, new(big.Int).Mul(q, t))
	}

	return oldR, oldS, oldT
}

// ModInverse returns x in [0, m) with a*x ≡ 1 (mod m).
// It fails with cryptoalg.ErrNoModularInverse when gcd(a, m) != 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, cryptoalg.ErrInvalidModulus
	}

	g, x, _ := ExtendedGCD(new(big.Int).Mod(a, m), m)
	if g.Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) = %s", cryptoalg.ErrNoModularInverse, a, m, g)
	}

	return x.Mod(x, m), nil
}

// PowerMod returns base^exponent mod modulus using right-to-left square-and-multiply,
// one exponent bit per step. It returns 0 for a modulus of 1.
func PowerMod(base, exponent, modulus *big.Int) (*big.Int, error) {
	if err := checkModulus(modulus); err != nil {
		return nil, err
	}
	if exponent.Sign() < 0 {
		return nil, cryptoalg.ErrNegativeExponent
	}
	if modulus.Cmp(bigOne) == 0 {
		return big.NewInt(0), nil
	}

	result := big.NewInt(1)
	b := new(big.Int).Mod(base, modulus)
	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}

	return result, nil
}

// checkModulus rejects a missing or non-positive modulus.
func checkModulus(modulus *big.Int) error {
	if modulus == nil || modulus.Sign() <= 0 {
		return cryptoalg.ErrInvalidModulus
	}
	return nil
}
