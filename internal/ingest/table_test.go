package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	tbl, err := ParseTable([]byte("id;name\n1;Ada\n2;Grace\n"))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)

	v, err := tbl.Field(tbl.Rows[0], "name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", v)

	v, err = tbl.Field(tbl.Rows[1], "id")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestParseTableTrimsHeaderAndValues(t *testing.T) {
	tbl, err := ParseTable([]byte(" id ; name \n 1 ; Ada \n"))
	require.NoError(t, err)

	v, err := tbl.Field(tbl.Rows[0], "name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", v)
}

func TestParseTableEmptyInput(t *testing.T) {
	_, err := ParseTable(nil)
	assert.Error(t, err)
}

func TestFieldMissingColumn(t *testing.T) {
	tbl, err := ParseTable([]byte("id\n1\n"))
	require.NoError(t, err)

	_, err = tbl.Field(tbl.Rows[0], "name")
	assert.ErrorContains(t, err, "missing column")
}

func TestFieldShortRow(t *testing.T) {
	tbl, err := ParseTable([]byte("id;name\n1;Ada\n"))
	require.NoError(t, err)

	_, err = tbl.Field([]string{"1"}, "name")
	assert.ErrorContains(t, err, "row too short")
}
