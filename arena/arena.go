package arena

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/time/rate"

	"github.com/hupe1980/blockarena/internal/conv"
)

// MaxCapacity is the largest arena that can be addressed with an Offset.
const MaxCapacity = math.MaxUint32 - 1

// Arena is a fixed-capacity block allocator over a single backing buffer.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	opts     options
	capacity uint32
	host     hostBuffer
	table    *blockTable
	used     *roaring.Bitmap // starts of used blocks
	logger   *Logger
	metrics  MetricsCollector
	warn     *rate.Limiter
	counters counters
	closed   bool
}

type counters struct {
	allocs         uint64
	grows          uint64
	inPlaceGrows   uint64
	relocations    uint64
	releases       uint64
	consolidations uint64
	merges         uint64
	failures       uint64
}

// New reserves capacity bytes from the host and returns an arena whose block
// table holds a single free block covering all of them.
//
// Any failure to obtain the buffer is reported as ErrHostExhausted and leaves
// nothing behind.
func New(capacity int, optFns ...Option) (*Arena, error) {
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidSize, capacity)
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.acquirer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), opts.acquireTimeout)
		err := opts.acquirer.AcquireMemory(ctx, conv.IntToInt64(capacity))
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: reserve %d bytes: %w", ErrHostExhausted, capacity, err)
		}
	}

	host, err := acquireHost(opts.backing, capacity)
	if err != nil {
		if opts.acquirer != nil {
			opts.acquirer.ReleaseMemory(conv.IntToInt64(capacity))
		}
		return nil, fmt.Errorf("%w: %w", ErrHostExhausted, err)
	}

	capacity32 := uint32(capacity) // validated above

	a := &Arena{
		opts:     opts,
		capacity: capacity32,
		host:     host,
		table:    newBlockTable(opts.maxBlocks, capacity32),
		used:     roaring.New(),
		logger:   opts.logger.WithArena(capacity, opts.backing),
		metrics:  opts.metricsCollector,
		warn:     rate.NewLimiter(opts.warnRate, opts.warnBurst),
	}

	a.logger.Info("arena initialized",
		"capacity", capacity,
		"max_blocks", opts.maxBlocks,
	)

	return a, nil
}

// MustNew is like New but panics if the host cannot provide the buffer.
func MustNew(capacity int, opts ...Option) *Arena {
	a, err := New(capacity, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Close returns the backing buffer to the host.
//
// Close requires the arena to be back in its initial state: one free block
// covering the whole buffer. If anything is still allocated it returns a
// *LeakError and leaves the arena untouched.
func (a *Arena) Close() error {
	if a.closed {
		return ErrClosed
	}

	if a.table.len() != 1 || a.table.blocks[0].State != Free {
		leaked := a.usedBlocks()
		a.logger.Error("arena closed with outstanding allocations",
			"blocks", len(leaked),
		)
		return &LeakError{Blocks: leaked}
	}

	err := a.host.release()
	if a.opts.acquirer != nil {
		a.opts.acquirer.ReleaseMemory(int64(a.capacity))
	}

	a.table = nil
	a.used = nil
	a.closed = true

	a.logger.Info("arena closed")

	if err != nil {
		return fmt.Errorf("arena: release backing buffer: %w", err)
	}
	return nil
}

// MustClose is like Close but panics on outstanding allocations.
func (a *Arena) MustClose() {
	if err := a.Close(); err != nil {
		panic(err)
	}
}

// Allocate reserves size bytes and returns the offset of the first one.
//
// The first free block large enough wins. A larger block is split and the
// remainder stays free; an exact fit is taken whole. Failures are soft: the
// error wraps ErrOutOfMemory or ErrTableFull in an *AllocError.
func (a *Arena) Allocate(size int) (Offset, error) {
	if a.closed {
		return NilOffset, ErrClosed
	}

	sz, err := a.checkSize(size)
	if err != nil {
		a.metrics.RecordAllocate(size, err)
		return NilOffset, err
	}

	off, err := a.allocate(sz)
	if err != nil {
		err = a.allocFailed("allocate", size, err)
		a.metrics.RecordAllocate(size, err)
		return NilOffset, err
	}

	a.counters.allocs++
	a.metrics.RecordAllocate(size, nil)
	return off, nil
}

func (a *Arena) allocate(size uint32) (Offset, error) {
	i, err := a.table.firstFit(size)
	if err != nil {
		return NilOffset, err
	}

	if rem, ok := a.table.split(i, size); ok {
		a.logger.logBlock("block split", rem)
	}

	off := a.table.blocks[i].Start
	a.used.Add(uint32(off))
	return off, nil
}

// Grow resizes the used block at old to newSize bytes.
//
// When the block directly following old is free and large enough the block
// is resized in place and old is returned. Otherwise the contents are copied
// to a fresh block, old is released and the new offset is returned; old must
// not be used afterwards. If no fresh block can be found the old block is
// left as it was and the error wraps ErrOutOfMemory or ErrTableFull.
//
// newSize may be smaller than the current size.
func (a *Arena) Grow(old Offset, newSize int) (Offset, error) {
	if a.closed {
		return NilOffset, ErrClosed
	}

	i := a.lookupUsed(old)
	if i < 0 {
		a.metrics.RecordGrow(0, newSize, false, ErrInvalidOffset)
		return NilOffset, fmt.Errorf("grow %d: %w", old, ErrInvalidOffset)
	}
	oldSize := int(a.table.blocks[i].Size)

	ns, err := a.checkSize(newSize)
	if err != nil {
		a.metrics.RecordGrow(oldSize, newSize, false, err)
		return NilOffset, err
	}

	a.counters.grows++

	if a.resizeInPlace(i, ns) {
		a.counters.inPlaceGrows++
		a.metrics.RecordGrow(oldSize, newSize, true, nil)
		return old, nil
	}

	off, err := a.allocate(ns)
	if err != nil {
		err = a.allocFailed("grow", newSize, err)
		a.metrics.RecordGrow(oldSize, newSize, false, err)
		return NilOffset, err
	}

	n := min(uint32(oldSize), ns)
	copy(a.host.data[off:off+Offset(n)], a.host.data[old:old+Offset(n)])

	// allocate only appends, so i still addresses the old block.
	a.release(i)

	a.counters.relocations++
	a.logger.logRelocate(old, off, uint32(oldSize), ns)
	a.metrics.RecordGrow(oldSize, newSize, false, nil)
	return off, nil
}

// resizeInPlace tries to resize used block i to size without moving it.
func (a *Arena) resizeInPlace(i int, size uint32) bool {
	cur := &a.table.blocks[i]
	if cur.Size == size {
		return true
	}

	j := a.table.find(Free, cur.End())

	if size < cur.Size {
		shrink := cur.Size - size
		if j >= 0 {
			next := &a.table.blocks[j]
			next.Start -= Offset(shrink)
			next.Size += shrink
			cur.Size = size
			return true
		}
		tail := Block{State: Free, Start: cur.Start + Offset(size), Size: shrink}
		if !a.table.push(tail) {
			return false
		}
		cur.Size = size
		a.logger.logBlock("block split", tail)
		return true
	}

	if j < 0 {
		return false
	}

	extra := size - cur.Size
	next := &a.table.blocks[j]
	switch {
	case next.Size > extra:
		next.Start += Offset(extra)
		next.Size -= extra
		cur.Size = size
		return true
	case next.Size == extra:
		cur.Size = size
		*next = Block{State: Null}
		a.consolidate()
		return true
	default:
		return false
	}
}

// Release returns the used block at off to the arena and merges it with
// any free neighbours.
//
// Releasing an offset that is not the start of a used block (a double release
// or a foreign offset) fails with ErrInvalidOffset and changes nothing.
func (a *Arena) Release(off Offset) error {
	if a.closed {
		return ErrClosed
	}

	i := a.lookupUsed(off)
	if i < 0 {
		err := fmt.Errorf("release %d: %w", off, ErrInvalidOffset)
		a.metrics.RecordRelease(0, err)
		return err
	}

	size := int(a.table.blocks[i].Size)
	a.release(i)

	a.counters.releases++
	a.metrics.RecordRelease(size, nil)
	return nil
}

func (a *Arena) release(i int) {
	b := &a.table.blocks[i]
	b.State = Free
	a.used.Remove(uint32(b.Start))
	a.consolidate()
}

// Reallocate is the single entry point covering Allocate, Grow and Release:
//   - old == NilOffset allocates newSize bytes
//   - newSize == 0 releases old and returns NilOffset
//   - anything else resizes old to newSize
//
// oldSize is accepted for symmetry with realloc-style callers; the block
// table is authoritative for the current size.
func (a *Arena) Reallocate(old Offset, oldSize, newSize int) (Offset, error) {
	_ = oldSize

	switch {
	case old == NilOffset:
		return a.Allocate(newSize)
	case newSize == 0:
		return NilOffset, a.Release(old)
	default:
		return a.Grow(old, newSize)
	}
}

func (a *Arena) consolidate() {
	merges, passes := a.table.consolidate()
	a.counters.consolidations++
	a.counters.merges += uint64(merges)
	a.logger.logConsolidate(merges, passes, a.table.len())
	a.metrics.RecordConsolidate(merges, passes)
}

// lookupUsed returns the table index of the used block starting at off, or -1.
func (a *Arena) lookupUsed(off Offset) int {
	if off == NilOffset || !a.used.Contains(uint32(off)) {
		return -1
	}
	return a.table.find(Used, off)
}

func (a *Arena) checkSize(size int) (uint32, error) {
	sz, err := conv.IntToUint32(size)
	if err != nil || sz == 0 {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidSize, size)
	}
	return sz, nil
}

func (a *Arena) allocFailed(op string, size int, cause error) error {
	a.counters.failures++
	if a.warn.Allow() {
		free, largest := a.freeSpace()
		a.logger.Warn("allocation failed",
			"op", op,
			"size", size,
			"free_bytes", free,
			"largest_free", largest,
			"blocks", a.table.len(),
			"error", cause,
		)
	}
	return &AllocError{Op: op, Size: size, cause: cause}
}

func (a *Arena) freeSpace() (total, largest uint64) {
	for _, b := range a.table.blocks {
		if b.State != Free {
			continue
		}
		total += uint64(b.Size)
		largest = max(largest, uint64(b.Size))
	}
	return total, largest
}

func (a *Arena) usedBlocks() []Block {
	var out []Block
	for _, b := range a.table.blocks {
		if b.State == Used {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, compareStart)
	return out
}

func compareStart(x, y Block) int {
	switch {
	case x.Start < y.Start:
		return -1
	case x.Start > y.Start:
		return 1
	default:
		return 0
	}
}

// Bytes returns n bytes of the arena starting at off. The slice aliases the
// backing buffer and is valid until the range is released or moved.
func (a *Arena) Bytes(off Offset, n int) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if n < 0 || off == NilOffset || uint64(off)+uint64(n) > uint64(a.capacity) {
		return nil, fmt.Errorf("%w: [%d,+%d)", ErrOutOfBounds, off, n)
	}
	end := off + Offset(n)
	return a.host.data[off:end:end], nil
}

// Block returns the whole used block starting at off.
func (a *Arena) Block(off Offset) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	i := a.lookupUsed(off)
	if i < 0 {
		return nil, fmt.Errorf("block %d: %w", off, ErrInvalidOffset)
	}
	return a.Bytes(off, int(a.table.blocks[i].Size))
}

// Fill sets n bytes starting at off to value.
func (a *Arena) Fill(off Offset, value byte, n int) error {
	buf, err := a.Bytes(off, n)
	if err != nil {
		return err
	}
	for i := range buf {
		buf[i] = value
	}
	return nil
}

// Blocks returns a copy of the block table in table order.
func (a *Arena) Blocks() []Block {
	if a.closed {
		return nil
	}
	return a.table.snapshot()
}

// Capacity returns the size of the backing buffer in bytes.
func (a *Arena) Capacity() int {
	return int(a.capacity)
}

// MaxBlocks returns the block table ceiling.
func (a *Arena) MaxBlocks() int {
	return a.opts.maxBlocks
}

// Check verifies the block table invariants: the live blocks tile the
// buffer exactly, no two adjacent blocks are both free, no dead entries are
// left behind and the used-offset index matches the table. Violations wrap
// ErrCorrupt.
func (a *Arena) Check() error {
	if a.closed {
		return ErrClosed
	}

	blocks := a.table.snapshot()
	slices.SortFunc(blocks, compareStart)

	var (
		errs []error
		next Offset
		used = roaring.New()
	)
	for k, b := range blocks {
		if b.State == Null {
			errs = append(errs, errors.New("null entry left in table"))
			continue
		}
		if b.Size == 0 {
			errs = append(errs, fmt.Errorf("empty block at %d", b.Start))
		}
		if b.Start != next {
			errs = append(errs, fmt.Errorf("block %s does not start at %d", b, next))
		}
		if k > 0 && b.State == Free && blocks[k-1].State == Free && blocks[k-1].End() == b.Start {
			errs = append(errs, fmt.Errorf("adjacent free blocks %s and %s", blocks[k-1], b))
		}
		if b.State == Used {
			used.Add(uint32(b.Start))
		}
		next = b.End()
	}
	if next != Offset(a.capacity) {
		errs = append(errs, fmt.Errorf("blocks end at %d, capacity is %d", next, a.capacity))
	}
	if !used.Equals(a.used) {
		errs = append(errs, fmt.Errorf("used index holds %d offsets, table holds %d", a.used.GetCardinality(), used.GetCardinality()))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrCorrupt, errors.Join(errs...))
}
