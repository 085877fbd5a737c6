// Package resource implements a host memory budget shared by arenas.
//
// An arena reserves its whole backing buffer once, at construction. When
// several arenas live in one process a Controller puts a ceiling on the sum of
// those reservations:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20, // 64 MiB across all arenas
//	})
//
//	a, err := arena.New(16<<20, arena.WithMemoryAcquirer(rc))
//	if err != nil {
//	    // errors.Is(err, arena.ErrHostExhausted)
//	}
//	defer a.Close() // returns the 16 MiB to rc
//
// Memory tracking uses a weighted semaphore for the hard limit and an atomic
// counter for usage. AcquireMemory blocks until the request fits or ctx is
// done; TryAcquireMemory never blocks.
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use. The arenas that consume
// the budget are not.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
