package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/smallbiznis/retailflow/internal/ingest/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Hash returns the hex digest of raw file content. It exists purely for
// change detection between runs, not as a security boundary.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Tracker persists at most one fingerprint record per logical file name.
type Tracker struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// EnsureSchema creates the fingerprint table when absent. Safe to call
// repeatedly and alongside the other table migrations.
func (t *Tracker) EnsureSchema(ctx context.Context) error {
	return t.db.WithContext(ctx).AutoMigrate(&domain.FileFingerprint{})
}

// HasChanged reports whether fileName needs re-ingestion: no record exists
// yet, or the stored hash differs from newHash. Pure read, no side effect.
func (t *Tracker) HasChanged(ctx context.Context, fileName, newHash string) (bool, error) {
	var rec domain.FileFingerprint
	err := t.db.WithContext(ctx).
		Select("content_hash").
		Where("file_name = ?", fileName).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return rec.ContentHash != newHash, nil
}

// Record upserts the fingerprint for fileName with the current timestamp. An
// existing record for the same name is overwritten, never duplicated.
func (t *Tracker) Record(ctx context.Context, fileName, hash string) error {
	rec := domain.FileFingerprint{
		FileName:    fileName,
		ContentHash: hash,
		IngestedAt:  time.Now().UTC(),
	}
	return t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "file_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"content_hash", "ingested_at"}),
		}).
		Create(&rec).Error
}
