package storage

import (
	"context"
	"errors"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/table"
)

// snapshotBackend serves an owner's newest revision as a crontab.
type snapshotBackend struct {
	storage core.Storage
	owner   string
}

// Backend returns a core.Backend that loads the newest revision for owner
// and saves by appending a revision. An owner without history loads as
// empty text.
func (s *GormStorage) Backend(owner string) core.Backend {
	return &snapshotBackend{storage: s, owner: owner}
}

func (b *snapshotBackend) Load(ctx context.Context) (string, error) {
	snap, err := b.storage.LatestSnapshot(ctx, b.owner)
	if errors.Is(err, core.ErrSnapshotNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return snap.Content, nil
}

func (b *snapshotBackend) Save(ctx context.Context, text string) error {
	return b.storage.SaveSnapshot(ctx, table.Load(text).Snapshot(b.owner, core.SourceCommit))
}
