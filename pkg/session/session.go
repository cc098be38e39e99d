package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/table"
)

// ErrNoHistory is returned by history operations on a session without storage.
var ErrNoHistory = errors.New("crontab: session has no history storage")

// Session manages one crontab.
type Session struct {
	backend core.Backend
	history core.Storage
	owner   string
	keep    int
	logger  *slog.Logger

	table *table.Table
	mu    sync.RWMutex

	// Hooks
	beforeCommit []func(context.Context, *table.Table) error
	onCommit     []func(context.Context, *core.Snapshot)

	// Event stream
	eventSubs []chan core.Event
}

// New creates a session over backend. The table is empty until Open.
func New(backend core.Backend, opts ...Option) *Session {
	s := &Session{
		backend: backend,
		owner:   DefaultOwner,
		keep:    DefaultKeep,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt.apply(s)
	}
	s.table = table.New(table.WithLogger(s.logger))
	return s
}

// Owner returns the owner revisions are recorded under.
func (s *Session) Owner() string {
	return s.owner
}

// Table returns the table being edited.
func (s *Session) Table() *table.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Open loads the table from the backend. With history, the loaded text
// is recorded unless it matches the newest revision.
func (s *Session) Open(ctx context.Context) error {
	text, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("crontab: load: %w", err)
	}

	t := table.Load(text, table.WithLogger(s.logger))
	s.mu.Lock()
	s.table = t
	s.mu.Unlock()

	s.logger.Debug("crontab: table loaded", "owner", s.owner, "jobs", len(t.Jobs()), "lines", t.Len())
	s.Emit(&core.TableLoaded{
		Owner:     s.owner,
		Jobs:      len(t.Jobs()),
		Lines:     t.Len(),
		Timestamp: time.Now(),
	})

	if s.history == nil {
		return nil
	}
	latest, err := s.history.LatestSnapshot(ctx, s.owner)
	if err != nil && !errors.Is(err, core.ErrSnapshotNotFound) {
		return fmt.Errorf("crontab: read history: %w", err)
	}
	if latest != nil && latest.Content == t.Render() {
		return nil
	}
	_, err = s.record(ctx, t, core.SourceLoad)
	return err
}

// Changes returns a unified diff of the uncommitted edits.
func (s *Session) Changes() string {
	return s.Table().Changes()
}

// Commit saves the rendered table to the backend. Before-commit hooks run
// first and any error aborts the commit. With history, the saved text is
// recorded and old revisions are pruned; the snapshot is returned, or nil
// without history.
func (s *Session) Commit(ctx context.Context) (*core.Snapshot, error) {
	t := s.Table()
	if err := s.callBeforeCommitHooks(ctx, t); err != nil {
		return nil, err
	}

	text := t.Render()
	if err := s.backend.Save(ctx, text); err != nil {
		return nil, fmt.Errorf("crontab: save: %w", err)
	}
	t.Checkpoint()
	s.logger.Info("crontab: table saved", "owner", s.owner, "jobs", len(t.Jobs()))

	var snap *core.Snapshot
	if s.history != nil {
		var err error
		if snap, err = s.record(ctx, t, core.SourceCommit); err != nil {
			return nil, err
		}
	}

	s.Emit(&core.TableSaved{Owner: s.owner, Snapshot: snap, Timestamp: time.Now()})
	s.callCommitHooks(ctx, snap)
	return snap, nil
}

// History lists the owner's revisions, newest first.
func (s *Session) History(ctx context.Context, limit int) ([]*core.Snapshot, error) {
	if s.history == nil {
		return nil, ErrNoHistory
	}
	return s.history.ListSnapshots(ctx, s.owner, limit)
}

// Snapshot returns one of the owner's revisions.
func (s *Session) Snapshot(ctx context.Context, id string) (*core.Snapshot, error) {
	if s.history == nil {
		return nil, ErrNoHistory
	}
	snap, err := s.history.GetSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap.Owner != s.owner {
		return nil, core.ErrSnapshotNotFound
	}
	return snap, nil
}

// Restore replaces the table with revision id and saves it to the backend.
// The restore itself is recorded as a new revision.
func (s *Session) Restore(ctx context.Context, id string) (*core.Snapshot, error) {
	snap, err := s.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	t := table.Load(snap.Content, table.WithLogger(s.logger))
	if err := s.backend.Save(ctx, t.Render()); err != nil {
		return nil, fmt.Errorf("crontab: save: %w", err)
	}
	s.mu.Lock()
	s.table = t
	s.mu.Unlock()

	restored, err := s.record(ctx, t, core.SourceRestore)
	if err != nil {
		return nil, err
	}
	s.logger.Info("crontab: revision restored", "owner", s.owner, "snapshot", snap.ID)
	s.Emit(&core.SnapshotRestored{Owner: s.owner, Snapshot: restored, Timestamp: time.Now()})
	return restored, nil
}

// record saves t as a revision and prunes old ones.
func (s *Session) record(ctx context.Context, t *table.Table, source string) (*core.Snapshot, error) {
	snap := t.Snapshot(s.owner, source)
	if err := s.history.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("crontab: record history: %w", err)
	}
	pruned, err := s.history.PruneSnapshots(ctx, s.owner, s.keep)
	if err != nil {
		s.logger.Warn("crontab: prune history failed", "owner", s.owner, "error", err)
	} else if pruned > 0 {
		s.logger.Debug("crontab: pruned history", "owner", s.owner, "deleted", pruned)
	}
	return snap, nil
}
