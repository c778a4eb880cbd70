package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/retailflow/internal/fingerprint"
	"github.com/smallbiznis/retailflow/internal/ingest"
	"github.com/smallbiznis/retailflow/internal/ingest/domain"
	"github.com/smallbiznis/retailflow/internal/refdata"
	"github.com/smallbiznis/retailflow/internal/txload"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Pipeline sequences schema setup, the reference load and the transaction
// window load for one invocation.
type Pipeline struct {
	db      *gorm.DB
	tracker *fingerprint.Tracker
	refs    *refdata.Loader
	txns    *txload.Loader
	log     *zap.Logger
}

func New(db *gorm.DB, tracker *fingerprint.Tracker, refs *refdata.Loader, txns *txload.Loader, log *zap.Logger) *Pipeline {
	return &Pipeline{db: db, tracker: tracker, refs: refs, txns: txns, log: log}
}

// Run executes one ingestion pass for the target process date. A run-level
// failure is logged with full context and returned so the caller can exit
// non-zero; per-file and per-hour failures are absorbed by the loaders.
func (p *Pipeline) Run(ctx context.Context, processDate time.Time) error {
	log := p.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("process_date", processDate.Format(ingest.DateLayout)),
	)
	log.Info("starting ingestion run")

	if err := p.run(ctx, processDate); err != nil {
		log.Error("pipeline failed", zap.Error(err))
		return err
	}
	log.Info("ingestion completed successfully")
	return nil
}

func (p *Pipeline) run(ctx context.Context, processDate time.Time) error {
	if err := p.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	p.refs.Run(ctx)
	return p.txns.Run(ctx, processDate.Format(ingest.DateLayout))
}

func (p *Pipeline) ensureSchema(ctx context.Context) error {
	err := p.db.WithContext(ctx).AutoMigrate(
		&domain.Client{},
		&domain.Store{},
		&domain.Product{},
		&domain.Transaction{},
	)
	if err != nil {
		return err
	}
	return p.tracker.EnsureSchema(ctx)
}
