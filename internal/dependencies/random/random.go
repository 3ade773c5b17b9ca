package random

import (
	"crypto/rand"
	"math/big"
)

// Random picks catalog entries; mocked in tests to fix the target champion
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

// Pick returns a random element of items, or the zero value and false when empty
func Pick[T any](r Random, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[r.Intn(len(items))], true
}
