package arena

// blockTable is a flat, unordered array of block descriptors with a fixed
// ceiling. Entry order carries no meaning: removal moves the last entry into
// the hole.
type blockTable struct {
	blocks []Block // len is the live count, cap is the ceiling
}

func newBlockTable(maxBlocks int, capacity uint32) *blockTable {
	t := &blockTable{blocks: make([]Block, 0, maxBlocks)}
	t.blocks = append(t.blocks, Block{State: Free, Start: 0, Size: capacity})
	return t
}

func (t *blockTable) len() int { return len(t.blocks) }

func (t *blockTable) full() bool { return len(t.blocks) == cap(t.blocks) }

// push appends b. It reports false when the table is at its ceiling.
func (t *blockTable) push(b Block) bool {
	if t.full() {
		return false
	}
	t.blocks = append(t.blocks, b)
	return true
}

// removeAt drops entry i by moving the last entry into its place.
func (t *blockTable) removeAt(i int) {
	last := len(t.blocks) - 1
	t.blocks[i] = t.blocks[last]
	t.blocks[last] = Block{}
	t.blocks = t.blocks[:last]
}

// firstFit returns the index of the first free block, in table order, that
// can serve size bytes. A block larger than size only qualifies while the
// table has room for the split remainder; with a full table only exact fits
// are accepted and ErrTableFull is reported if a larger block was skipped.
func (t *blockTable) firstFit(size uint32) (int, error) {
	canSplit := !t.full()
	skipped := false
	for i := range t.blocks {
		b := &t.blocks[i]
		if b.State != Free {
			continue
		}
		if b.Size == size {
			return i, nil
		}
		if b.Size > size {
			if canSplit {
				return i, nil
			}
			skipped = true
		}
	}
	if skipped {
		return -1, ErrTableFull
	}
	return -1, ErrOutOfMemory
}

// find returns the index of the block in state s starting at off, or -1.
func (t *blockTable) find(s BlockState, off Offset) int {
	for i := range t.blocks {
		if t.blocks[i].State == s && t.blocks[i].Start == off {
			return i
		}
	}
	return -1
}

// split shrinks free block i to size and marks it used. The remainder, if
// any, is appended as a new free block. Callers guarantee room in the table
// whenever a remainder exists.
func (t *blockTable) split(i int, size uint32) (Block, bool) {
	b := &t.blocks[i]
	b.State = Used
	if b.Size == size {
		return Block{}, false
	}
	rem := Block{State: Free, Start: b.Start + Offset(size), Size: b.Size - size}
	b.Size = size
	t.blocks = append(t.blocks, rem)
	return rem, true
}

// consolidate merges offset-adjacent free blocks and compacts away null
// entries, repeating until a full pass changes nothing. It returns the
// number of merges and passes performed.
func (t *blockTable) consolidate() (merges, passes int) {
	for {
		passes++
		changed := false

		for i := 0; i < len(t.blocks); {
			switch t.blocks[i].State {
			case Null:
				t.removeAt(i)
				changed = true
				continue // re-examine the entry moved into i
			case Free:
				for j := range t.blocks {
					if j == i {
						continue
					}
					next := &t.blocks[j]
					if next.State == Free && next.Start == t.blocks[i].End() {
						t.blocks[i].Size += next.Size
						*next = Block{State: Null}
						merges++
						changed = true
					}
				}
			}
			i++
		}

		if !changed {
			return merges, passes
		}
	}
}

// snapshot returns a copy of the live entries.
func (t *blockTable) snapshot() []Block {
	out := make([]Block, len(t.blocks))
	copy(out, t.blocks)
	return out
}
