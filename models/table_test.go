package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Append(t *testing.T) {
	table := NewTable("a", "b")

	require.NoError(t, table.Append(Row{"a": "x", "b": 1.0}))
	assert.Equal(t, 1, table.Len())

	// wrong column set
	assert.Error(t, table.Append(Row{"a": "x", "c": 1.0}))
	// missing column
	assert.Error(t, table.Append(Row{"a": "x"}))
	// extra column
	assert.Error(t, table.Append(Row{"a": "x", "b": 1.0, "c": nil}))

	assert.Equal(t, 1, table.Len())
}

func TestTable_Head(t *testing.T) {
	table := NewTable("n")
	for i := 0; i < 30; i++ {
		require.NoError(t, table.Append(Row{"n": float64(i)}))
	}

	head := table.Head(20)
	assert.Equal(t, 20, head.Len())
	assert.Equal(t, []string{"n"}, head.Columns)
	assert.Equal(t, 0.0, head.Rows[0]["n"])
	assert.Equal(t, 19.0, head.Rows[19]["n"])

	assert.Equal(t, 30, table.Head(50).Len())
	assert.Equal(t, 30, table.Head(-1).Len())
	assert.Equal(t, 0, table.Head(0).Len())
}

func TestTable_HasColumn(t *testing.T) {
	table := NewTable("Place", "Magnitude")
	assert.True(t, table.HasColumn("Magnitude"))
	assert.False(t, table.HasColumn("magnitude"))
	assert.False(t, NewTable().HasColumn("Magnitude"))
}
