package core

import "context"

// Backend is the collaborator a crontab is loaded from and saved to.
// Load returns the complete text of the table; an owner without any
// entries yields an empty string and a nil error. Save receives the
// rendered table verbatim.
type Backend interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, text string) error
}

// Storage defines the persistence layer for crontab history.
type Storage interface {
	// Migrate creates the necessary database tables.
	Migrate(ctx context.Context) error

	// Revisions
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	LatestSnapshot(ctx context.Context, owner string) (*Snapshot, error)
	ListSnapshots(ctx context.Context, owner string, limit int) ([]*Snapshot, error)

	// Retention
	PruneSnapshots(ctx context.Context, owner string, keep int) (int64, error)
}
