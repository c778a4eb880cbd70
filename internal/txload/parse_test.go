package txload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffHeader(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "valid header", data: "transaction_id;client_id\n1;2\n"},
		{name: "comment prefix", data: "# generated 2025-03-02\n1;2\n", wantErr: true},
		{name: "placeholder marker", data: "This File Contains placeholder data\n", wantErr: true},
		{name: "marker mid line", data: "note: this file contains nothing useful\n", wantErr: true},
		{name: "marker on later line only", data: "transaction_id;client_id\n# this file contains\n"},
		{name: "empty file", data: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := sniffHeader([]byte(tc.data))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHeader)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCombineTimestamp(t *testing.T) {
	ts, err := combineTimestamp("2025-03-02", 9, 5)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-02 09:05:00", ts)

	ts, err = combineTimestamp("2025-12-31", 20, 59)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31 20:59:00", ts)

	_, err = combineTimestamp("not-a-date", 9, 5)
	assert.Error(t, err)

	_, err = combineTimestamp("2025-03-02", 24, 0)
	assert.Error(t, err)

	_, err = combineTimestamp("2025-03-02", 9, 61)
	assert.Error(t, err)
}

func TestParseHourFile(t *testing.T) {
	data := []byte("transaction_id;client_id;product_id;store_id;date;hour;minute;quantity\n" +
		"1001;1;10;5;2025-03-02;9;5;2\n" +
		"1002;99;11;5;2025-03-02;9;30;1\n")
	accounts := map[int64]string{1: "A123"}

	rows, err := parseHourFile(data, accounts)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.EqualValues(t, 1001, rows[0].TransactionID)
	assert.Equal(t, "2025-03-02 09:05:00", rows[0].TransactionTime)
	require.NotNil(t, rows[0].AccountID)
	assert.Equal(t, "A123", *rows[0].AccountID)

	// Unmapped client ids keep the row, with a NULL account.
	assert.EqualValues(t, 99, rows[1].ClientID)
	assert.Nil(t, rows[1].AccountID)
}

func TestParseHourFileRejectsInvalidHeader(t *testing.T) {
	_, err := parseHourFile([]byte("# This file contains placeholder data\n"), nil)
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

func TestParseHourFileBadRow(t *testing.T) {
	data := []byte("transaction_id;client_id;product_id;store_id;date;hour;minute;quantity\n" +
		"not-a-number;1;10;5;2025-03-02;9;5;2\n")
	_, err := parseHourFile(data, nil)
	assert.ErrorContains(t, err, "row 1")
}

func TestHourFileName(t *testing.T) {
	assert.Equal(t, "transactions_2025-03-02_8.csv", hourFileName("2025-03-02", 8))
	assert.Equal(t, "transactions_2025-03-02_20.csv", hourFileName("2025-03-02", 20))
}
