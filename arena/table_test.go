package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableOf(maxBlocks int, blocks ...Block) *blockTable {
	t := &blockTable{blocks: make([]Block, 0, maxBlocks)}
	t.blocks = append(t.blocks, blocks...)
	return t
}

func TestBlockTable_FirstFit(t *testing.T) {
	tests := []struct {
		name    string
		table   *blockTable
		size    uint32
		want    int
		wantErr error
	}{
		{
			name:  "first larger block wins",
			table: tableOf(8, Block{Used, 0, 10}, Block{Free, 10, 50}, Block{Free, 60, 20}),
			size:  20,
			want:  1,
		},
		{
			name:  "table order not size order",
			table: tableOf(8, Block{Free, 60, 20}, Block{Used, 0, 10}, Block{Free, 10, 50}),
			size:  20,
			want:  0,
		},
		{
			name:    "nothing large enough",
			table:   tableOf(8, Block{Used, 0, 10}, Block{Free, 10, 5}),
			size:    6,
			want:    -1,
			wantErr: ErrOutOfMemory,
		},
		{
			name:  "full table accepts exact fit",
			table: tableOf(3, Block{Free, 0, 50}, Block{Used, 50, 10}, Block{Free, 60, 20}),
			size:  20,
			want:  2,
		},
		{
			name:    "full table cannot split",
			table:   tableOf(2, Block{Free, 0, 50}, Block{Used, 50, 10}),
			size:    20,
			want:    -1,
			wantErr: ErrTableFull,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.table.firstFit(tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlockTable_Split(t *testing.T) {
	t.Run("larger block", func(t *testing.T) {
		tab := newBlockTable(4, 100)

		rem, ok := tab.split(0, 30)
		require.True(t, ok)
		assert.Equal(t, Block{Free, 30, 70}, rem)
		assert.Equal(t, []Block{{Used, 0, 30}, {Free, 30, 70}}, tab.blocks)
	})

	t.Run("exact fit", func(t *testing.T) {
		tab := newBlockTable(4, 100)

		_, ok := tab.split(0, 100)
		assert.False(t, ok)
		assert.Equal(t, []Block{{Used, 0, 100}}, tab.blocks)
	})
}

func TestBlockTable_RemoveAt(t *testing.T) {
	tab := tableOf(4, Block{Used, 0, 10}, Block{Null, 0, 0}, Block{Free, 10, 5}, Block{Used, 15, 5})

	tab.removeAt(1)

	assert.Equal(t, []Block{{Used, 0, 10}, {Used, 15, 5}, {Free, 10, 5}}, tab.blocks)
}

func TestBlockTable_Push(t *testing.T) {
	tab := newBlockTable(2, 100)

	assert.True(t, tab.push(Block{Free, 100, 1}))
	assert.True(t, tab.full())
	assert.False(t, tab.push(Block{Free, 101, 1}))
	assert.Equal(t, 2, tab.len())
}

func TestBlockTable_Consolidate(t *testing.T) {
	t.Run("chain in reverse table order", func(t *testing.T) {
		tab := tableOf(8,
			Block{Free, 20, 10},
			Block{Free, 10, 10},
			Block{Used, 30, 70},
			Block{Free, 0, 10},
		)

		merges, passes := tab.consolidate()

		assert.Equal(t, 2, merges)
		assert.GreaterOrEqual(t, passes, 2)
		assert.ElementsMatch(t, []Block{{Free, 0, 30}, {Used, 30, 70}}, tab.blocks)
	})

	t.Run("non adjacent free blocks stay apart", func(t *testing.T) {
		tab := tableOf(8,
			Block{Free, 0, 10},
			Block{Used, 10, 10},
			Block{Free, 20, 10},
		)

		merges, passes := tab.consolidate()

		assert.Zero(t, merges)
		assert.Equal(t, 1, passes)
		assert.Len(t, tab.blocks, 3)
	})

	t.Run("drops null entries", func(t *testing.T) {
		tab := tableOf(8,
			Block{Null, 0, 0},
			Block{Used, 0, 50},
			Block{Null, 0, 0},
			Block{Free, 50, 50},
		)

		merges, _ := tab.consolidate()

		assert.Zero(t, merges)
		assert.ElementsMatch(t, []Block{{Used, 0, 50}, {Free, 50, 50}}, tab.blocks)
	})
}

func TestBlockState_String(t *testing.T) {
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "free", Free.String())
	assert.Equal(t, "used", Used.String())
	assert.Equal(t, "BlockState(9)", BlockState(9).String())
	assert.Equal(t, "used[100,150)", Block{Used, 100, 50}.String())
}

func TestBlockState_MarshalText(t *testing.T) {
	b, err := Used.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "used", string(b))
}
