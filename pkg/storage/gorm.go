// Package storage provides storage implementations for the crontab package.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/security"
)

// GormStorage implements Storage using GORM.
type GormStorage struct {
	db *gorm.DB
}

var _ core.Storage = (*GormStorage)(nil)

// NewGormStorage creates a new GORM-backed storage.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// DB returns the underlying GORM handle.
func (s *GormStorage) DB() *gorm.DB {
	return s.db
}

// Migrate creates the necessary tables.
func (s *GormStorage) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&core.Snapshot{})
}

// newestFirst orders revisions by creation, ties broken by ID.
const newestFirst = "created_at DESC, id DESC"

// SaveSnapshot stores a new revision, assigning an ID when empty.
// Assigned IDs are time-ordered UUIDv7s, so revisions sharing a
// created_at still sort in insertion order.
func (s *GormStorage) SaveSnapshot(ctx context.Context, snap *core.Snapshot) error {
	if snap.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		snap.ID = id.String()
	}
	if snap.Source == "" {
		snap.Source = core.SourceCommit
	}
	if err := security.ValidateTableSize(snap.Content); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(snap).Error
}

// GetSnapshot retrieves a revision by ID.
func (s *GormStorage) GetSnapshot(ctx context.Context, id string) (*core.Snapshot, error) {
	var snap core.Snapshot
	err := s.db.WithContext(ctx).First(&snap, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// LatestSnapshot retrieves the newest revision for owner.
func (s *GormStorage) LatestSnapshot(ctx context.Context, owner string) (*core.Snapshot, error) {
	var snap core.Snapshot
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order(newestFirst).
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListSnapshots returns revisions for owner, newest first. A limit of
// zero or less returns every revision.
func (s *GormStorage) ListSnapshots(ctx context.Context, owner string, limit int) ([]*core.Snapshot, error) {
	var snaps []*core.Snapshot
	q := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order(newestFirst)
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&snaps).Error
	return snaps, err
}

// PruneSnapshots deletes all but the newest keep revisions for owner.
// keep is clamped to [1, MaxHistoryKeep].
func (s *GormStorage) PruneSnapshots(ctx context.Context, owner string, keep int) (int64, error) {
	keep = security.ClampKeep(keep)

	var ids []string
	err := s.db.WithContext(ctx).
		Model(&core.Snapshot{}).
		Where("owner = ?", owner).
		Order(newestFirst).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) <= keep {
		return 0, nil
	}

	result := s.db.WithContext(ctx).
		Where("id IN ?", ids[keep:]).
		Delete(&core.Snapshot{})
	return result.RowsAffected, result.Error
}
