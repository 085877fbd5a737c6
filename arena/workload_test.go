package arena

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/blockarena/testutil"
)

type liveBlock struct {
	off  Offset
	size int
	id   int
}

// TestRandomWorkload drives a seeded mix of allocations, resizes and releases
// and checks the table invariants and block contents after every step.
func TestRandomWorkload(t *testing.T) {
	for _, seed := range []uint64{1, 42, 4711} {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			runWorkload(t, testutil.NewRNG(seed), 64<<10, 2000)
		})
	}
}

func TestRandomWorkload_SmallTable(t *testing.T) {
	runWorkload(t, testutil.NewRNG(7), 16<<10, 1000, WithMaxBlocks(8))
}

func runWorkload(t *testing.T, rng *testutil.RNG, capacity, steps int, opts ...Option) {
	t.Helper()

	a := newTestArena(t, capacity, opts...)

	var (
		live   []liveBlock
		nextID int
	)

	verify := func() {
		t.Helper()
		require.NoError(t, a.Check())
		for _, lb := range live {
			buf, err := a.Block(lb.off)
			require.NoError(t, err)
			require.Len(t, buf, lb.size)
			require.True(t, testutil.HasPattern(buf, lb.id), "block %d at %d lost its content", lb.id, lb.off)
		}
	}

	for range steps {
		switch {
		case len(live) == 0 || rng.Chance(0.5):
			size := rng.IntRange(1, 1024)
			off, err := a.Allocate(size)
			if err != nil {
				requireSoftFailure(t, err)
				break
			}
			buf, err := a.Block(off)
			require.NoError(t, err)
			testutil.FillPattern(buf, nextID)
			live = append(live, liveBlock{off: off, size: size, id: nextID})
			nextID++

		case rng.Chance(0.5):
			k := rng.Intn(len(live))
			lb := live[k]
			newSize := rng.IntRange(1, 2048)
			off, err := a.Grow(lb.off, newSize)
			if err != nil {
				requireSoftFailure(t, err)
				break
			}
			buf, err := a.Bytes(off, min(lb.size, newSize))
			require.NoError(t, err)
			require.True(t, testutil.HasPattern(buf, lb.id), "grow lost content of block %d", lb.id)

			buf, err = a.Block(off)
			require.NoError(t, err)
			testutil.FillPattern(buf, lb.id)
			live[k] = liveBlock{off: off, size: newSize, id: lb.id}

		default:
			k := rng.Intn(len(live))
			require.NoError(t, a.Release(live[k].off))
			live[k] = live[len(live)-1]
			live = live[:len(live)-1]
		}
		verify()
	}

	rng.Shuffle(len(live), func(i, j int) { live[i], live[j] = live[j], live[i] })
	for _, lb := range live {
		require.NoError(t, a.Release(lb.off))
		require.NoError(t, a.Check())
	}

	require.Equal(t, []Block{{Free, 0, uint32(capacity)}}, a.Blocks())
	require.NoError(t, a.Close())
}

func requireSoftFailure(t *testing.T, err error) {
	t.Helper()
	var allocErr *AllocError
	require.True(t, errors.As(err, &allocErr), "unexpected error: %v", err)
	require.True(t, errors.Is(err, ErrOutOfMemory) || errors.Is(err, ErrTableFull))
}

func BenchmarkAllocateRelease(b *testing.B) {
	a, err := New(1<<20, WithBacking(BackingHeap))
	require.NoError(b, err)
	defer a.MustClose()

	for b.Loop() {
		off, err := a.Allocate(64)
		if err != nil {
			b.Fatal(err)
		}
		if err := a.Release(off); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGrowDoubling(b *testing.B) {
	a, err := New(1<<20, WithBacking(BackingHeap))
	require.NoError(b, err)
	defer a.MustClose()

	for b.Loop() {
		off, err := a.Allocate(8)
		if err != nil {
			b.Fatal(err)
		}
		for size := 16; size <= 64<<10; size *= 2 {
			if off, err = a.Grow(off, size); err != nil {
				b.Fatal(err)
			}
		}
		if err := a.Release(off); err != nil {
			b.Fatal(err)
		}
	}
}
