package arena

import (
	"fmt"
	"math"
)

// Offset is a byte position in the arena. It stands in for a pointer: every
// allocation is identified by the offset of its first byte.
type Offset uint32

// NilOffset is the null Offset. It is never the start of a block.
const NilOffset Offset = math.MaxUint32

// BlockState is the state of a block descriptor.
type BlockState uint8

const (
	// Null marks a dead descriptor awaiting compaction. Null descriptors do
	// not describe any bytes.
	Null BlockState = iota
	// Free marks a range available for allocation.
	Free
	// Used marks a range owned by a caller.
	Used
)

var blockStateNames = map[BlockState]string{
	Null: "null",
	Free: "free",
	Used: "used",
}

func (s BlockState) String() string {
	name, ok := blockStateNames[s]
	if !ok {
		return fmt.Sprintf("BlockState(%d)", uint8(s))
	}
	return name
}

// MarshalText encodes the state by name.
func (s BlockState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Block describes one contiguous range of the arena.
type Block struct {
	State BlockState
	Start Offset
	Size  uint32
}

// End returns the offset one past the block's last byte.
func (b Block) End() Offset {
	return b.Start + Offset(b.Size)
}

func (b Block) String() string {
	return fmt.Sprintf("%s[%d,%d)", b.State, b.Start, b.End())
}
