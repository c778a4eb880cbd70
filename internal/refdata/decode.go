package refdata

import (
	"fmt"
	"strconv"

	"github.com/smallbiznis/retailflow/internal/ingest"
	"github.com/smallbiznis/retailflow/internal/ingest/domain"
)

// decodeFunc turns raw file bytes into a slice ready for bulk insert, plus
// the decoded row count. Each reference file registers its own decoder so the
// structural transforms stay testable in isolation.
type decodeFunc func(data []byte) (rows any, count int, err error)

// source binds one reference file to its target table, gorm model and decoder.
type source struct {
	file   string
	table  string
	model  any
	decode decodeFunc
}

func sources() []source {
	return []source{
		{file: "clients.csv", table: "clients", model: &domain.Client{}, decode: decodeClients},
		{file: "products.csv", table: "products", model: &domain.Product{}, decode: decodeProducts},
		{file: "stores.csv", table: "stores", model: &domain.Store{}, decode: decodeStores},
	}
}

func decodeClients(data []byte) (any, int, error) {
	tbl, err := ingest.ParseTable(data)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Client, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		c := domain.Client{}
		if c.ID, err = intField(tbl, row, "id"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		if c.Name, err = tbl.Field(row, "name"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		if c.Job, err = tbl.Field(row, "job"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		if c.Email, err = tbl.Field(row, "email"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		if c.AccountID, err = tbl.Field(row, "account_id"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func decodeProducts(data []byte) (any, int, error) {
	tbl, err := ingest.ParseTable(data)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Product, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		p := domain.Product{}
		if p.ID, err = intField(tbl, row, "id"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		if p.EAN, err = intField(tbl, row, "ean"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		if p.Brand, err = tbl.Field(row, "brand"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		if p.Description, err = tbl.Field(row, "description"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

// decodeStores applies the one mandated structural transform: the combined
// latlng column is split into latitude and longitude and dropped.
func decodeStores(data []byte) (any, int, error) {
	tbl, err := ingest.ParseTable(data)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Store, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		s := domain.Store{}
		if s.ID, err = intField(tbl, row, "id"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		latlng, err := tbl.Field(row, "latlng")
		if err != nil {
			return nil, 0, rowErr(i, err)
		}
		if s.Latitude, s.Longitude, err = splitCoordinates(latlng); err != nil {
			return nil, 0, rowErr(i, err)
		}
		if s.Opening, err = tbl.Field(row, "opening"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		if s.Closing, err = tbl.Field(row, "closing"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		if s.Type, err = tbl.Field(row, "type"); err != nil {
			return nil, 0, rowErr(i, err)
		}
		out = append(out, s)
	}
	return out, len(out), nil
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
