package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/retailflow/internal/fingerprint"
	"github.com/smallbiznis/retailflow/internal/ingest"
	"github.com/smallbiznis/retailflow/internal/ingest/domain"
	"github.com/smallbiznis/retailflow/internal/refdata"
	"github.com/smallbiznis/retailflow/internal/txload"
	"github.com/smallbiznis/retailflow/pkg/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type countingRecorder struct {
	ingest.NopRecorder
	filesLoaded  int
	filesSkipped int
	txnsLoaded   int
}

func (r *countingRecorder) FileLoaded(_, _ string, _ int) { r.filesLoaded++ }
func (r *countingRecorder) FileSkipped(string)            { r.filesSkipped++ }
func (r *countingRecorder) TransactionsLoaded(_ string, rows int) {
	r.txnsLoaded += rows
}

func newTestPipeline(t *testing.T, name string) (*Pipeline, *blob.MemoryStore, *countingRecorder, *gorm.DB) {
	t.Helper()
	// No AutoMigrate here: the pipeline is responsible for creating its own
	// tables on a fresh database.
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)

	store := blob.NewMemoryStore()
	store.Put("clients.csv", []byte("id;name;job;email;account_id\n1;Ada Lovelace;Engineer;ada@example.com;A123\n"))
	store.Put("products.csv", []byte("id;ean;brand;description\n10;4006381333931;Acme;Stapler\n"))
	store.Put("stores.csv", []byte("id;latlng;opening;closing;type\n5;(40.7,-74.0);08:00;20:00;flagship\n"))
	store.Put("transactions_2025-03-02_9.csv", []byte(
		"transaction_id;client_id;product_id;store_id;date;hour;minute;quantity\n"+
			"1001;1;10;5;2025-03-02;9;5;2\n"+
			"1002;1;10;5;2025-03-02;9;45;1\n"))
	store.Put("transactions_2025-03-02_17.csv", []byte(
		"transaction_id;client_id;product_id;store_id;date;hour;minute;quantity\n"+
			"1003;1;10;5;2025-03-02;17;30;4\n"))

	rec := &countingRecorder{}
	log := zap.NewNop()
	tracker := fingerprint.New(db)
	p := New(db,
		tracker,
		refdata.NewLoader(db, store, tracker, rec, log),
		txload.NewLoader(db, store, rec, log),
		log,
	)
	return p, store, rec, db
}

func processDate(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse(ingest.DateLayout, "2025-03-02")
	require.NoError(t, err)
	return d
}

func TestRunFromEmptyDatabase(t *testing.T) {
	p, _, rec, db := newTestPipeline(t, "pipeline_fresh")

	require.NoError(t, p.Run(context.Background(), processDate(t)))

	assert.Equal(t, 3, rec.filesLoaded)
	assert.Equal(t, 3, rec.txnsLoaded)

	var clients, products, stores, txns int64
	require.NoError(t, db.Model(&domain.Client{}).Count(&clients).Error)
	require.NoError(t, db.Model(&domain.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&domain.Store{}).Count(&stores).Error)
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&txns).Error)
	assert.EqualValues(t, 1, clients)
	assert.EqualValues(t, 1, products)
	assert.EqualValues(t, 1, stores)
	assert.EqualValues(t, 3, txns)

	var txn domain.Transaction
	require.NoError(t, db.First(&txn, 1003).Error)
	assert.Equal(t, "2025-03-02", txn.ProcessDate)
	require.NotNil(t, txn.AccountID)
	assert.Equal(t, "A123", *txn.AccountID)
}

func TestRerunSkipsUnchangedAndStaysStable(t *testing.T) {
	p, _, rec, db := newTestPipeline(t, "pipeline_rerun")
	ctx := context.Background()
	date := processDate(t)

	require.NoError(t, p.Run(ctx, date))
	require.NoError(t, p.Run(ctx, date))

	// Second pass: every reference file unchanged, transactions replaced in
	// full with the same rows.
	assert.Equal(t, 3, rec.filesLoaded)
	assert.Equal(t, 3, rec.filesSkipped)

	var txns int64
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&txns).Error)
	assert.EqualValues(t, 3, txns)
}
