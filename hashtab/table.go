// Package hashtab provides an append-only key/value table kept in arena memory.
//
// A Table stores keys and values in two parallel stretchy arrays. Lookups scan
// the keys linearly and return the first match, so adding a key twice shadows
// nothing: the older entry keeps winning. Entries cannot be removed one at a
// time; Destroy drops them all.
package hashtab

import (
	"fmt"

	"github.com/hupe1980/blockarena/arena"
	"github.com/hupe1980/blockarena/stretchy"
)

// Table maps K to V. Create one with New.
type Table[K, V stretchy.Element] struct {
	keys   *stretchy.Array[K]
	values *stretchy.Array[V]
	size   int
}

// New returns an empty table that allocates from a.
func New[K, V stretchy.Element](a *arena.Arena) *Table[K, V] {
	return &Table[K, V]{
		keys:   stretchy.New[K](a),
		values: stretchy.New[V](a),
	}
}

// Len returns the number of entries.
func (t *Table[K, V]) Len() int {
	return t.size
}

// Add appends the entry k → v. If the arena cannot hold it the table is left
// unchanged.
func (t *Table[K, V]) Add(k K, v V) error {
	if err := t.keys.Push(k); err != nil {
		return fmt.Errorf("hashtab: add key: %w", err)
	}
	if err := t.values.Push(v); err != nil {
		t.keys.Pop()
		return fmt.Errorf("hashtab: add value: %w", err)
	}
	t.size++
	return nil
}

// Get returns the value of the first entry with key k.
func (t *Table[K, V]) Get(k K) (v V, ok bool) {
	for i := range t.size {
		if t.keys.At(i) == k {
			return t.values.At(i), true
		}
	}
	return v, false
}

// Lookup returns the value of the first entry with key k, or def if there is
// none.
func (t *Table[K, V]) Lookup(k K, def V) V {
	if v, ok := t.Get(k); ok {
		return v
	}
	return def
}

// Destroy releases both arrays and leaves the table empty and reusable.
func (t *Table[K, V]) Destroy() error {
	kerr := t.keys.Free()
	verr := t.values.Free()
	t.size = 0
	if kerr != nil {
		return fmt.Errorf("hashtab: destroy: %w", kerr)
	}
	if verr != nil {
		return fmt.Errorf("hashtab: destroy: %w", verr)
	}
	return nil
}
