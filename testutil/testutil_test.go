package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizes(t *testing.T) {
	rng := NewRNG(4711)

	sizes := rng.Sizes(1000, 8, 64)

	assert.Len(t, sizes, 1000)
	for _, s := range sizes {
		assert.GreaterOrEqual(t, s, 8)
		assert.LessOrEqual(t, s, 64)
	}
}

func TestChance(t *testing.T) {
	rng := NewRNG(4711)

	assert.False(t, rng.Chance(0))
	assert.True(t, rng.Chance(1))

	hits := 0
	for range 10000 {
		if rng.Chance(0.5) {
			hits++
		}
	}
	assert.InDelta(t, 5000, hits, 500)
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.Sizes(10, 0, 1000)

	rng.Reset()
	v2 := rng.Sizes(10, 0, 1000)

	assert.Equal(t, v1, v2)
	assert.Equal(t, uint64(4711), rng.Seed())
}

func TestShuffle(t *testing.T) {
	rng := NewRNG(1)
	s := []int{0, 1, 2, 3, 4, 5, 6, 7}

	rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })

	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, s)
}

func TestPattern(t *testing.T) {
	buf := make([]byte, 100)
	FillPattern(buf, 3)

	assert.True(t, HasPattern(buf, 3))
	assert.False(t, HasPattern(buf, 4))

	buf[50]++
	assert.False(t, HasPattern(buf, 3))
}
