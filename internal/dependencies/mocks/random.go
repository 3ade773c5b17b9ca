package mocks

import (
	"github.com/mcoot/champguess/internal/dependencies/random"
)

// MockRandom returns queued values from Intn
type MockRandom struct {
	IntnResults []int
	intnIndex   int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result modulo n, or 0 once the queue is drained
func (r *MockRandom) Intn(n int) int {
	if n <= 0 || r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result % n
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
}
