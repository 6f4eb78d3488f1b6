package cryptography

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"sync"
)

// lockedReader serializes reads from a random source that is not safe for concurrent use.
type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

// NewLockedReader wraps r so that concurrent key generations can share it.
// crypto/rand.Reader is returned unwrapped since it is already safe for concurrent use.
func NewLockedReader(r io.Reader) io.Reader {
	if r == rand.Reader {
		return r
	}
	if _, ok := r.(*lockedReader); ok {
		return r
	}
	return &lockedReader{r: r}
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

// randomInRange returns a uniformly random integer in [lo, hi].
func randomInRange(random io.Reader, lo, hi *big.Int) (*big.Int, error) {
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, bigOne)

	v, err := rand.Int(random, span)
	if err != nil {
		return nil, fmt.Errorf("failed to read from random source: %w", err)
	}
	return v.Add(v, lo), nil
}

// randomOddWithTopBit returns a uniformly random odd integer of exactly bits bits.
func randomOddWithTopBit(random io.Reader, bits int) (*big.Int, error) {
	upper := new(big.Int).Lsh(bigOne, uint(bits))

	v, err := rand.Int(random, upper)
	if err != nil {
		return nil, fmt.Errorf("failed to read from random source: %w", err)
	}
	v.SetBit(v, bits-1, 1)
	v.SetBit(v, 0, 1)
	return v, nil
}
