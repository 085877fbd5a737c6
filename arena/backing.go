package arena

import (
	"fmt"

	"github.com/hupe1980/blockarena/internal/mmap"
)

// Backing selects the host provider of the arena's backing buffer.
type Backing int

const (
	// BackingMmap obtains the buffer from an anonymous private mapping,
	// outside the Go heap. This is the default.
	BackingMmap Backing = iota
	// BackingHeap obtains the buffer from the Go heap.
	BackingHeap
)

func (b Backing) String() string {
	switch b {
	case BackingMmap:
		return "mmap"
	case BackingHeap:
		return "heap"
	default:
		return fmt.Sprintf("Backing(%d)", int(b))
	}
}

// hostBuffer is the backing buffer together with whatever owns it.
type hostBuffer struct {
	data    []byte
	mapping *mmap.Mapping // nil for heap backing
}

func acquireHost(b Backing, size int) (hostBuffer, error) {
	switch b {
	case BackingHeap:
		return hostBuffer{data: make([]byte, size)}, nil
	case BackingMmap:
		m, err := mmap.MapAnon(size)
		if err != nil {
			return hostBuffer{}, err
		}
		// Blocks are handed out in no particular order.
		_ = m.Advise(mmap.AccessRandom)
		return hostBuffer{data: m.Bytes(), mapping: m}, nil
	default:
		return hostBuffer{}, fmt.Errorf("unknown backing %d", int(b))
	}
}

func (h *hostBuffer) release() error {
	h.data = nil
	if h.mapping == nil {
		return nil
	}
	m := h.mapping
	h.mapping = nil
	return m.Close()
}
