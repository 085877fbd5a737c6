// Package prng provides small, fast, deterministic pseudo-random generators.
//
// Xoroshiro128Plus is the workhorse; SplitMix64 expands a single 64-bit seed
// into well-mixed state for it. Both implement math/rand/v2's Source, so they
// can back a *rand.Rand when the richer API is needed:
//
//	r := rand.New(prng.Seeded(42))
//
// Neither generator is cryptographically secure or safe for concurrent use.
package prng
