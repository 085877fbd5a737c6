package prng

import "math/bits"

var jump = [2]uint64{0xBEAC0467EBA5FACB, 0xD86B048B86AA9922}

// Xoroshiro128Plus is the xoroshiro128+ generator (a=55, b=14, c=36).
type Xoroshiro128Plus struct {
	s [2]uint64
}

// NewXoroshiro128Plus returns a generator with the given state. The state
// must not be all zero.
func NewXoroshiro128Plus(s0, s1 uint64) *Xoroshiro128Plus {
	return &Xoroshiro128Plus{s: [2]uint64{s0, s1}}
}

// Seeded returns a generator whose state is drawn from a SplitMix64 seeded
// with seed.
func Seeded(seed uint64) *Xoroshiro128Plus {
	sm := NewSplitMix64(seed)
	return NewXoroshiro128Plus(sm.Next(), sm.Next())
}

// Next returns the next value in the sequence.
func (x *Xoroshiro128Plus) Next() uint64 {
	s0, s1 := x.s[0], x.s[1]
	result := s0 + s1

	s1 ^= s0
	x.s[0] = bits.RotateLeft64(s0, 55) ^ s1 ^ (s1 << 14)
	x.s[1] = bits.RotateLeft64(s1, 36)

	return result
}

// Uint64 implements math/rand/v2.Source.
func (x *Xoroshiro128Plus) Uint64() uint64 {
	return x.Next()
}

// Jump advances the generator by 2^64 calls to Next. It is used to derive
// non-overlapping sequences from one seed.
func (x *Xoroshiro128Plus) Jump() {
	var s0, s1 uint64
	for _, word := range jump {
		for b := 0; b < 64; b++ {
			if word&(1<<b) != 0 {
				s0 ^= x.s[0]
				s1 ^= x.s[1]
			}
			x.Next()
		}
	}
	x.s[0], x.s[1] = s0, s1
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (x *Xoroshiro128Plus) Intn(n int) int {
	if n <= 0 {
		panic("prng: invalid argument to Intn")
	}
	hi, _ := bits.Mul64(x.Next(), uint64(n))
	return int(hi)
}

// State returns the current state.
func (x *Xoroshiro128Plus) State() (s0, s1 uint64) {
	return x.s[0], x.s[1]
}
