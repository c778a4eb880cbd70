package txload

import (
	"context"
	"fmt"

	"github.com/smallbiznis/retailflow/internal/ingest"
	"github.com/smallbiznis/retailflow/internal/ingest/domain"
	"github.com/smallbiznis/retailflow/pkg/blob"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Serving window: one partition file per hour, 08:00 through 20:00 inclusive.
const (
	windowStartHour = 8
	windowEndHour   = 20
)

const insertBatchSize = 500

// Loader ingests the hourly transaction window for one process date. The
// purge-then-append sequence makes re-runs for the same date idempotent.
type Loader struct {
	db    *gorm.DB
	store blob.Store
	rec   ingest.Recorder
	log   *zap.Logger
}

func NewLoader(db *gorm.DB, store blob.Store, rec ingest.Recorder, log *zap.Logger) *Loader {
	return &Loader{db: db, store: store, rec: rec, log: log}
}

// hourFileName derives the expected partition file name. The hour is not
// zero-padded; that matches how the files are produced.
func hourFileName(processDate string, hour int) string {
	return fmt.Sprintf("transactions_%s_%d.csv", processDate, hour)
}

// Run loads every hourly file found for processDate. A per-hour failure skips
// that hour only; a partial day is an acceptable outcome. Zero contributing
// files leaves the table untouched for the date, after the purge.
func (l *Loader) Run(ctx context.Context, processDate string) error {
	if err := l.purge(ctx, processDate); err != nil {
		return fmt.Errorf("purge transactions for %s: %w", processDate, err)
	}

	accounts, err := l.accountMap(ctx)
	if err != nil {
		return fmt.Errorf("load account map: %w", err)
	}

	var batch []domain.Transaction
	for hour := windowStartHour; hour <= windowEndHour; hour++ {
		name := hourFileName(processDate, hour)
		rows, err := l.loadHour(ctx, name, accounts)
		if err != nil {
			l.rec.HourFailed(name, err)
			continue
		}
		if rows == nil {
			// Absent files are expected, not an error.
			continue
		}
		batch = append(batch, rows...)
		l.rec.HourLoaded(name, len(rows))
	}

	if len(batch) == 0 {
		l.rec.WindowEmpty(processDate)
		return nil
	}

	for i := range batch {
		batch[i].ProcessDate = processDate
	}
	if err := l.db.WithContext(ctx).CreateInBatches(batch, insertBatchSize).Error; err != nil {
		return fmt.Errorf("append transactions for %s: %w", processDate, err)
	}
	l.rec.TransactionsLoaded(processDate, len(batch))
	return nil
}

// purge deletes rows left over from a prior run for the same date so a re-run
// never produces duplicates.
func (l *Loader) purge(ctx context.Context, processDate string) error {
	res := l.db.WithContext(ctx).
		Where("process_date = ?", processDate).
		Delete(&domain.Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		l.rec.TransactionsPurged(processDate, res.RowsAffected)
	}
	return nil
}

// accountMap loads the client id to account id mapping used for enrichment.
// The dimension set is small and bounded, so it fits in memory.
func (l *Loader) accountMap(ctx context.Context) (map[int64]string, error) {
	var clients []domain.Client
	if err := l.db.WithContext(ctx).Select("id", "account_id").Find(&clients).Error; err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(clients))
	for _, c := range clients {
		out[c.ID] = c.AccountID
	}
	return out, nil
}

// loadHour returns nil rows (and nil error) when the file does not exist.
func (l *Loader) loadHour(ctx context.Context, name string, accounts map[int64]string) ([]domain.Transaction, error) {
	ok, err := l.store.Exists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if !ok {
		return nil, nil
	}
	data, err := l.store.Download(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	return parseHourFile(data, accounts)
}
