package arena

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Stats is a snapshot of the arena's occupancy and operation counters.
//
// Note on semantics:
//   - UsedBytes/FreeBytes: current split of Capacity between used and free blocks
//   - LargestFree: the biggest request that can currently succeed without growth in place
//   - Allocs, Grows, Releases: successful operations since New
//   - Failures: allocations and relocations refused for lack of space
type Stats struct {
	Capacity    uint64
	MaxBlocks   int
	Blocks      int
	UsedBlocks  int
	FreeBlocks  int
	UsedBytes   uint64
	FreeBytes   uint64
	LargestFree uint64

	Allocs         uint64
	Grows          uint64
	InPlaceGrows   uint64
	Relocations    uint64
	Releases       uint64
	Consolidations uint64
	Merges         uint64
	Failures       uint64
}

// Fragmentation returns the share of free bytes that lies outside the
// largest free block: 0 when all free space is contiguous.
func (s Stats) Fragmentation() float64 {
	if s.FreeBytes == 0 {
		return 0
	}
	return 1 - float64(s.LargestFree)/float64(s.FreeBytes)
}

// Stats returns a snapshot of the arena. A closed arena reports only its
// counters.
func (a *Arena) Stats() Stats {
	s := Stats{
		Capacity:       uint64(a.capacity),
		MaxBlocks:      a.opts.maxBlocks,
		Allocs:         a.counters.allocs,
		Grows:          a.counters.grows,
		InPlaceGrows:   a.counters.inPlaceGrows,
		Relocations:    a.counters.relocations,
		Releases:       a.counters.releases,
		Consolidations: a.counters.consolidations,
		Merges:         a.counters.merges,
		Failures:       a.counters.failures,
	}
	if a.closed {
		return s
	}

	s.Blocks = a.table.len()
	for _, b := range a.table.blocks {
		switch b.State {
		case Used:
			s.UsedBlocks++
			s.UsedBytes += uint64(b.Size)
		case Free:
			s.FreeBlocks++
			s.FreeBytes += uint64(b.Size)
			s.LargestFree = max(s.LargestFree, uint64(b.Size))
		}
	}
	return s
}

func (a *Arena) String() string {
	if a.closed {
		return fmt.Sprintf("arena(closed, %s)", humanize.IBytes(uint64(a.capacity)))
	}
	s := a.Stats()
	return fmt.Sprintf("arena(%s of %s used, %d/%d blocks, %s)",
		humanize.IBytes(s.UsedBytes),
		humanize.IBytes(s.Capacity),
		s.Blocks,
		s.MaxBlocks,
		a.opts.backing,
	)
}
