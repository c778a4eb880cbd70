package refdata

import (
	"context"
	"fmt"

	"github.com/smallbiznis/retailflow/internal/fingerprint"
	"github.com/smallbiznis/retailflow/internal/ingest"
	"github.com/smallbiznis/retailflow/pkg/blob"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const insertBatchSize = 500

// Loader replaces the reference dimension tables wholesale whenever the
// source file's fingerprint changes.
type Loader struct {
	db      *gorm.DB
	store   blob.Store
	tracker *fingerprint.Tracker
	rec     ingest.Recorder
	log     *zap.Logger
}

func NewLoader(db *gorm.DB, store blob.Store, tracker *fingerprint.Tracker, rec ingest.Recorder, log *zap.Logger) *Loader {
	return &Loader{db: db, store: store, tracker: tracker, rec: rec, log: log}
}

// Run ingests every reference source. A failure on one file degrades that
// dimension only; the remaining files still load.
func (l *Loader) Run(ctx context.Context) {
	for _, src := range sources() {
		if err := l.loadSource(ctx, src); err != nil {
			l.rec.FileFailed(src.file, err)
		}
	}
}

func (l *Loader) loadSource(ctx context.Context, src source) error {
	data, err := l.store.Download(ctx, src.file)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}

	hash := fingerprint.Hash(data)
	changed, err := l.tracker.HasChanged(ctx, src.file, hash)
	if err != nil {
		return fmt.Errorf("check fingerprint: %w", err)
	}
	if !changed {
		l.rec.FileSkipped(src.file)
		return nil
	}

	rows, count, err := src.decode(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := l.replaceTable(ctx, src, rows, count); err != nil {
		return fmt.Errorf("replace table %s: %w", src.table, err)
	}

	// Fingerprint is recorded only after the table write. A crash in between
	// re-runs the replace on the next invocation, which is safe; skipping a
	// real change is not.
	if err := l.tracker.Record(ctx, src.file, hash); err != nil {
		return fmt.Errorf("record fingerprint: %w", err)
	}
	l.rec.FileLoaded(src.file, src.table, count)
	return nil
}

// replaceTable swaps the entire table contents for the decoded rows in one
// transaction. Rows from the previous file revision are discarded, not merged.
func (l *Loader) replaceTable(ctx context.Context, src source, rows any, count int) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(src.model).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
}
