package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTablesOrderedByNumber(t *testing.T) {
	f := newFixture(t)
	for _, n := range []int{12, 3, 7} {
		f.table(t, n)
	}

	tables, err := f.tables.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, 3, tables[0].TableNumber)
	assert.Equal(t, 7, tables[1].TableNumber)
	assert.Equal(t, 12, tables[2].TableNumber)
}

func TestListTablesEmpty(t *testing.T) {
	f := newFixture(t)

	tables, err := f.tables.ListTables(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tables)
	assert.Empty(t, tables)
}

func TestGetTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.table(t, 4)

	table, err := f.tables.GetTable(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, table.TableNumber)
	assert.Equal(t, 4, table.Capacity)

	_, err = f.tables.GetTable(ctx, created.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}
