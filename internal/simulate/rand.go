package simulate

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the source of randomness for simulated operations.
// It is satisfied by *LockedRand and easy to stub in tests.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// LockedRand is a seedable random source safe for use by concurrent
// request handlers. math/rand sources created with rand.New are not
// goroutine-safe on their own.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand returns a LockedRand seeded with the given seed.
func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{r: rand.New(rand.NewSource(seed))}
}

// NewRand returns a LockedRand seeded from the current time.
func NewRand() *LockedRand {
	return NewLockedRand(time.Now().UnixNano())
}

// Float64 returns a value in [0.0, 1.0).
func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// Intn returns a value in [0, n).
func (l *LockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
