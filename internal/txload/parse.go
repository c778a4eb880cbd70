package txload

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/retailflow/internal/ingest"
	"github.com/smallbiznis/retailflow/internal/ingest/domain"
)

// ErrInvalidHeader marks an hourly file whose first line is a comment or a
// metadata placeholder rather than a data header.
var ErrInvalidHeader = errors.New("invalid header")

const placeholderMarker = "this file contains"

// sniffHeader inspects the first line only. A "#" prefix or a case-insensitive
// "this file contains" marker means the file is metadata masquerading as data.
// The heuristic can false-positive on legitimate data carrying that substring
// in the first row; it is kept as-is deliberately.
func sniffHeader(data []byte) error {
	text := string(data)
	line := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		line = text[:i]
	}
	if strings.HasPrefix(line, "#") || strings.Contains(strings.ToLower(line), placeholderMarker) {
		return fmt.Errorf("%w: first line %q", ErrInvalidHeader, line)
	}
	return nil
}

// parseHourFile validates, parses and enriches one hourly partition file.
// Client ids absent from accounts yield a NULL account_id; the row is kept.
func parseHourFile(data []byte, accounts map[int64]string) ([]domain.Transaction, error) {
	if err := sniffHeader(data); err != nil {
		return nil, err
	}
	tbl, err := ingest.ParseTable(data)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Transaction, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		txn := domain.Transaction{}
		if txn.TransactionID, err = intField(tbl, row, "transaction_id"); err != nil {
			return nil, rowErr(i, err)
		}
		if txn.ClientID, err = intField(tbl, row, "client_id"); err != nil {
			return nil, rowErr(i, err)
		}
		if txn.ProductID, err = intField(tbl, row, "product_id"); err != nil {
			return nil, rowErr(i, err)
		}
		if txn.StoreID, err = intField(tbl, row, "store_id"); err != nil {
			return nil, rowErr(i, err)
		}
		if txn.Quantity, err = intField(tbl, row, "quantity"); err != nil {
			return nil, rowErr(i, err)
		}

		day, err := tbl.Field(row, "date")
		if err != nil {
			return nil, rowErr(i, err)
		}
		hour, err := intField(tbl, row, "hour")
		if err != nil {
			return nil, rowErr(i, err)
		}
		minute, err := intField(tbl, row, "minute")
		if err != nil {
			return nil, rowErr(i, err)
		}
		if txn.TransactionTime, err = combineTimestamp(day, int(hour), int(minute)); err != nil {
			return nil, rowErr(i, err)
		}

		if account, ok := accounts[txn.ClientID]; ok {
			txn.AccountID = &account
		}
		out = append(out, txn)
	}
	return out, nil
}

// combineTimestamp normalizes separate date, hour and minute fields into a
// single "YYYY-MM-DD HH:MM:SS" timestamp string.
func combineTimestamp(day string, hour, minute int) (string, error) {
	d, err := time.Parse(ingest.DateLayout, strings.TrimSpace(day))
	if err != nil {
		return "", fmt.Errorf("bad date %q: %w", day, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("time of day out of range: %d:%d", hour, minute)
	}
	ts := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
	return ts.Format("2006-01-02 15:04:05"), nil
}

func intField(tbl *ingest.Table, row []string, column string) (int64, error) {
	raw, err := tbl.Field(row, column)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: bad integer %q", column, raw)
	}
	return v, nil
}

func rowErr(row int, err error) error {
	return fmt.Errorf("row %d: %w", row+1, err)
}
