// Package stretchy provides a growable array stored in an arena block.
//
// An Array keeps a hidden header {size, capacity} in the first eight bytes of
// its block, followed by the elements. Capacity grows geometrically: it
// doubles, is never less than what the pending append needs, and starts at
// MinCapacity. Growth goes through arena.Reallocate, so when the block that
// follows is free the array grows in place without copying.
//
//	a := arena.MustNew(1 << 20)
//	defer a.MustClose()
//
//	xs := stretchy.New[int64](a)
//	defer xs.Free()
//
//	for i := range 100 {
//	    if err := xs.Push(int64(i)); err != nil {
//	        // errors.Is(err, arena.ErrOutOfMemory)
//	    }
//	}
//
// A failed Push leaves the array exactly as it was.
//
// Growth may move the block. Offsets and arena byte views taken before a
// growth are stale afterwards, and so is any copy of the Array value; keep
// and pass *Array.
package stretchy
