package testutil

import (
	"sync"

	"github.com/hupe1980/blockarena/prng"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *prng.Xoroshiro128Plus
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: prng.Seeded(seed),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = prng.Seeded(r.seed)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Intn returns, as an int, a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// IntRange returns a pseudo-random number in [lo, hi].
func (r *RNG) IntRange(lo, hi int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rand.Intn(hi-lo+1)
}

// Uint64 returns a pseudo-random 64-bit value.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Next()
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return float64(r.rand.Next()>>11)/(1<<53) < p
}

// Sizes generates n sizes in [lo, hi].
// Locks only once per call (preferred over calling IntRange in a loop).
func (r *RNG) Sizes(n, lo, hi int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = lo + r.rand.Intn(hi-lo+1)
	}
	return out
}

// Shuffle pseudo-randomizes the order of n elements using swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := n - 1; i > 0; i-- {
		swap(i, r.rand.Intn(i+1))
	}
}

// FillPattern stamps buf with a byte pattern derived from id.
func FillPattern(buf []byte, id int) {
	for i := range buf {
		buf[i] = patternByte(id, i)
	}
}

// HasPattern reports whether buf still carries the pattern FillPattern
// stamped for id.
func HasPattern(buf []byte, id int) bool {
	for i, b := range buf {
		if b != patternByte(id, i) {
			return false
		}
	}
	return true
}

func patternByte(id, i int) byte {
	return byte(id*31 + i*7 + 1)
}
