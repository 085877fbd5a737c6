// Package arena provides a fixed-capacity block allocator over one backing buffer.
//
// The buffer is obtained from the host once, in New, and returned once, in
// Close. Everything in between is bookkeeping in a flat table of block
// descriptors ({state, start, size}) whose ceiling is set at construction.
// There is no free list and no size classes.
//
// # Operations
//
//   - Allocate: first fit in table order; a larger block is split, an exact fit is taken whole
//   - Grow: resizes in place when the following block is free and big enough, otherwise copies
//   - Release: marks the block free and consolidates
//   - Reallocate: one realloc-style entry point covering all three
//
// Consolidation merges offset-adjacent free blocks and compacts dead entries,
// repeating until a pass changes nothing. It runs after every release and
// every grow that swallows its neighbour whole, so two free blocks are never
// left side by side. Free blocks that are not adjacent are never moved.
//
// # Offsets
//
// Allocations are identified by an Offset into the buffer rather than a
// pointer. Use Bytes or Block to view the memory. A relocating Grow
// invalidates the old offset and every slice taken from it.
//
// # Errors
//
// Running out of space (ErrOutOfMemory, ErrTableFull) is a soft failure
// returned as an *AllocError; the arena is unchanged. Releasing an offset that
// is not a used block returns ErrInvalidOffset. Closing an arena with live
// allocations returns a *LeakError; MustClose turns that into a panic.
//
// # Thread Safety
//
// An Arena is not safe for concurrent use.
package arena
