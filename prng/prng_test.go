package prng

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMix64_KnownSequence(t *testing.T) {
	g := NewSplitMix64(0)
	assert.Equal(t, uint64(0xE220A8397B1DCDAF), g.Next())
	assert.Equal(t, uint64(0x6E789E6AA1B965F4), g.Next())
}

func TestXoroshiro128Plus_Next(t *testing.T) {
	x := NewXoroshiro128Plus(1, 2)

	assert.Equal(t, uint64(3), x.Next())
	assert.Equal(t, uint64(0x8000300000C003), x.Next())
}

func TestXoroshiro128Plus_Deterministic(t *testing.T) {
	a := Seeded(4711)
	b := Seeded(4711)
	for range 1000 {
		require.Equal(t, a.Next(), b.Next())
	}

	c := Seeded(4712)
	assert.NotEqual(t, Seeded(4711).Next(), c.Next())
}

func TestXoroshiro128Plus_Jump(t *testing.T) {
	a := Seeded(1)
	b := Seeded(1)
	a.Jump()
	b.Jump()

	s0, s1 := a.State()
	t0, t1 := b.State()
	assert.Equal(t, s0, t0)
	assert.Equal(t, s1, t1)

	plain := Seeded(1)
	assert.NotEqual(t, plain.Next(), a.Next())
}

func TestXoroshiro128Plus_Intn(t *testing.T) {
	x := Seeded(99)
	seen := make([]bool, 10)
	for range 10000 {
		v := x.Intn(10)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 10)
		seen[v] = true
	}
	for i, ok := range seen {
		assert.True(t, ok, "value %d never drawn", i)
	}

	assert.Panics(t, func() { x.Intn(0) })
}

func TestSource(t *testing.T) {
	var _ rand.Source = (*Xoroshiro128Plus)(nil)
	var _ rand.Source = (*SplitMix64)(nil)

	r := rand.New(Seeded(7))
	v := r.IntN(100)
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 100)
}

func BenchmarkXoroshiro128Plus_Next(b *testing.B) {
	x := Seeded(1)
	for b.Loop() {
		_ = x.Next()
	}
}
