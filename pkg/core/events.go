package core

import "time"

// Event is the interface for all session events.
type Event interface {
	eventMarker()
}

// TableLoaded is emitted after a session loads its table from the backend.
type TableLoaded struct {
	Owner     string
	Jobs      int
	Lines     int
	Timestamp time.Time
}

func (*TableLoaded) eventMarker() {}

// TableSaved is emitted after a session commits its table to the backend.
type TableSaved struct {
	Owner     string
	Snapshot  *Snapshot // nil when no history storage is configured
	Timestamp time.Time
}

func (*TableSaved) eventMarker() {}

// SnapshotRestored is emitted when a session replaces its table with a stored revision.
type SnapshotRestored struct {
	Owner     string
	Snapshot  *Snapshot
	Timestamp time.Time
}

func (*SnapshotRestored) eventMarker() {}
