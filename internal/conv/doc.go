// Package conv provides checked integer conversions.
//
// The arena addresses its backing buffer with uint32 offsets while callers
// speak in Go ints. Every boundary crossing between the two goes through this
// package so an oversized request turns into an error instead of a silently
// truncated offset.
//
// For conversions that are provably safe by construction (loop indices,
// values already validated against the arena capacity) use a direct cast.
package conv
