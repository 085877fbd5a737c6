package stretchy

import (
	"fmt"
	"iter"

	"github.com/hupe1980/blockarena/arena"
	"github.com/hupe1980/blockarena/internal/conv"
	"github.com/hupe1980/blockarena/internal/mem"
)

const (
	// HeaderSize is the number of bytes in front of the first element.
	HeaderSize = 8

	// MinCapacity is the capacity of an array's first allocation.
	MinCapacity = 8
)

// Element is the set of types an Array can hold.
type Element interface {
	mem.Scalar
}

// Array is a growable array of T backed by an arena block. Create one with New.
type Array[T Element] struct {
	arena *arena.Arena
	off   arena.Offset // NilOffset while empty
}

// New returns an empty array that allocates from a. Nothing is allocated
// until the first append.
func New[T Element](a *arena.Arena) *Array[T] {
	return &Array[T]{arena: a, off: arena.NilOffset}
}

// Arena returns the arena the array allocates from.
func (s *Array[T]) Arena() *arena.Arena {
	return s.arena
}

// Offset returns the offset of the array's block, or arena.NilOffset while
// the array is empty.
func (s *Array[T]) Offset() arena.Offset {
	return s.off
}

// Len returns the number of elements.
func (s *Array[T]) Len() int {
	if s.off == arena.NilOffset {
		return 0
	}
	return int(mem.Get[uint32](s.view(0, 4)))
}

// Cap returns the number of elements the array can hold without growing.
func (s *Array[T]) Cap() int {
	if s.off == arena.NilOffset {
		return 0
	}
	return int(mem.Get[uint32](s.view(4, 4)))
}

// IsFull reports whether the next append has to grow the array. An array
// that was never allocated is full.
func (s *Array[T]) IsFull() bool {
	return s.Len() == s.Cap()
}

// Push appends v, growing the array first if it is full.
func (s *Array[T]) Push(v T) error {
	if err := s.Reserve(1); err != nil {
		return err
	}
	n := s.Len()
	s.put(n, v)
	s.setLen(n + 1)
	return nil
}

// Append appends vs with at most one growth.
func (s *Array[T]) Append(vs ...T) error {
	if len(vs) == 0 {
		return nil
	}
	if err := s.Reserve(len(vs)); err != nil {
		return err
	}
	n := s.Len()
	for i, v := range vs {
		s.put(n+i, v)
	}
	s.setLen(n + len(vs))
	return nil
}

// Reserve makes room for n more elements. The new capacity is the larger of
// twice the current capacity (MinCapacity from empty) and Len()+n.
func (s *Array[T]) Reserve(n int) error {
	size, capacity := s.Len(), s.Cap()
	if n <= 0 || size+n <= capacity {
		return nil
	}

	next := MinCapacity
	if s.off != arena.NilOffset {
		next = 2 * capacity
	}
	return s.grow(max(next, size+n))
}

func (s *Array[T]) grow(capacity int) error {
	newBytes, err := blockSize[T](capacity)
	if err != nil {
		return fmt.Errorf("stretchy: grow to %d elements: %w", capacity, arena.ErrInvalidSize)
	}
	capacity32, err := conv.IntToUint32(capacity)
	if err != nil {
		return fmt.Errorf("stretchy: grow to %d elements: %w", capacity, arena.ErrInvalidSize)
	}
	oldBytes, _ := blockSize[T](s.Cap())

	fresh := s.off == arena.NilOffset
	off, err := s.arena.Reallocate(s.off, oldBytes, newBytes)
	if err != nil {
		return fmt.Errorf("stretchy: grow to %d elements: %w", capacity, err)
	}

	s.off = off
	if fresh {
		s.setLen(0)
	}
	mem.Put(s.view(4, 4), capacity32)
	return nil
}

// At returns element i. It panics if i is out of range.
func (s *Array[T]) At(i int) T {
	s.checkIndex(i)
	return mem.Get[T](s.view(elemOffset[T](i), mem.Sizeof[T]()))
}

// Set overwrites element i. It panics if i is out of range.
func (s *Array[T]) Set(i int, v T) {
	s.checkIndex(i)
	s.put(i, v)
}

// Last returns the last element. It panics if the array is empty.
func (s *Array[T]) Last() T {
	return s.At(s.Len() - 1)
}

// Pop removes and returns the last element. ok is false if the array is empty.
func (s *Array[T]) Pop() (v T, ok bool) {
	n := s.Len()
	if n == 0 {
		return v, false
	}
	v = s.At(n - 1)
	s.setLen(n - 1)
	return v, true
}

// Clear drops all elements but keeps the capacity.
func (s *Array[T]) Clear() {
	if s.off != arena.NilOffset {
		s.setLen(0)
	}
}

// All returns an iterator over index/value pairs.
func (s *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range s.Len() {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}

// Values copies the elements into a new slice.
func (s *Array[T]) Values() []T {
	out := make([]T, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Free releases the array's block and leaves the array empty and reusable.
func (s *Array[T]) Free() error {
	if s.off == arena.NilOffset {
		return nil
	}
	if err := s.arena.Release(s.off); err != nil {
		return fmt.Errorf("stretchy: free: %w", err)
	}
	s.off = arena.NilOffset
	return nil
}

func (s *Array[T]) String() string {
	return fmt.Sprintf("stretchy.Array[%d/%d]", s.Len(), s.Cap())
}

func (s *Array[T]) checkIndex(i int) {
	if n := s.Len(); i < 0 || i >= n {
		panic(fmt.Sprintf("stretchy: index out of range [%d] with length %d", i, n))
	}
}

func (s *Array[T]) setLen(n int) {
	mem.Put(s.view(0, 4), uint32(n)) //nolint:gosec // n <= capacity, which fits uint32
}

func (s *Array[T]) put(i int, v T) {
	mem.Put(s.view(elemOffset[T](i), mem.Sizeof[T]()), v)
}

// view returns n bytes at byte position pos of the array's block. The block
// is only ever addressed through offsets the arena handed out, so a failure
// here means the array was used after its arena was closed.
func (s *Array[T]) view(pos, n int) []byte {
	b, err := s.arena.Bytes(s.off+arena.Offset(pos), n)
	if err != nil {
		panic(fmt.Sprintf("stretchy: %v", err))
	}
	return b
}

func elemOffset[T Element](i int) int {
	return HeaderSize + i*mem.Sizeof[T]()
}

func blockSize[T Element](capacity int) (int, error) {
	n, err := conv.MulInt(capacity, mem.Sizeof[T]())
	if err != nil {
		return 0, err
	}
	return HeaderSize + n, nil
}
