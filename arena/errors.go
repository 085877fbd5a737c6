package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrHostExhausted indicates the host could not provide the backing buffer
	// (budget refused or the mapping failed). No arena exists afterwards.
	ErrHostExhausted = errors.New("arena: host memory exhausted")

	// ErrOutOfMemory indicates no free block is large enough for the request.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrTableFull indicates a large enough free block exists but splitting it
	// would exceed the block table ceiling.
	ErrTableFull = errors.New("arena: block table full")

	// ErrInvalidOffset indicates an offset that is not the start of a used block
	// (double release, foreign or stale offset).
	ErrInvalidOffset = errors.New("arena: offset is not a used block")

	// ErrInvalidSize indicates a non-positive or oversized request.
	ErrInvalidSize = errors.New("arena: invalid size")

	// ErrOutOfBounds indicates a byte range outside the arena.
	ErrOutOfBounds = errors.New("arena: range out of bounds")

	// ErrLeak indicates allocations were still outstanding at Close.
	ErrLeak = errors.New("arena: outstanding allocations at close")

	// ErrClosed indicates use of an arena after a successful Close.
	ErrClosed = errors.New("arena: closed")

	// ErrCorrupt indicates the block table violates one of its invariants.
	ErrCorrupt = errors.New("arena: block table corrupt")
)

// AllocError describes a soft allocation failure.
//
// The underlying sentinel (ErrOutOfMemory or ErrTableFull) can be accessed via errors.Unwrap.
type AllocError struct {
	Op   string // "allocate" or "grow"
	Size int    // requested size in bytes
	cause error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("%s %d bytes: %v", e.Op, e.Size, e.cause)
}

func (e *AllocError) Unwrap() error { return e.cause }

// LeakError lists the blocks still in use when Close was called.
//
// It matches ErrLeak with errors.Is.
type LeakError struct {
	Blocks []Block
}

func (e *LeakError) Error() string {
	var bytes uint64
	for _, b := range e.Blocks {
		bytes += uint64(b.Size)
	}
	return fmt.Sprintf("%v: %d block(s), %d bytes", ErrLeak, len(e.Blocks), bytes)
}

func (e *LeakError) Unwrap() error { return ErrLeak }
