package prng

// SplitMix64 is Vigna's splitmix64 generator. Its main use is seeding.
type SplitMix64 struct {
	s uint64
}

// NewSplitMix64 returns a generator starting from seed.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{s: seed}
}

// Next returns the next value in the sequence.
func (g *SplitMix64) Next() uint64 {
	g.s += 0x9E3779B97F4A7C15
	z := g.s
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Uint64 implements math/rand/v2.Source.
func (g *SplitMix64) Uint64() uint64 {
	return g.Next()
}
