package session

import (
	"context"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/table"
)

// OnBeforeCommit registers a check run before the table is saved. A
// non-nil error aborts the commit.
func (s *Session) OnBeforeCommit(fn func(context.Context, *table.Table) error) {
	s.mu.Lock()
	s.beforeCommit = append(s.beforeCommit, fn)
	s.mu.Unlock()
}

// OnCommit registers a callback for after a successful commit. The
// snapshot is nil without history.
func (s *Session) OnCommit(fn func(context.Context, *core.Snapshot)) {
	s.mu.Lock()
	s.onCommit = append(s.onCommit, fn)
	s.mu.Unlock()
}

// Events returns a channel for receiving session events.
// The caller must call Unsubscribe when done to prevent resource leaks.
func (s *Session) Events() <-chan core.Event {
	ch := make(chan core.Event, 100)
	s.mu.Lock()
	s.eventSubs = append(s.eventSubs, ch)
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber channel created by Events().
// The channel is not closed.
func (s *Session) Unsubscribe(ch <-chan core.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.eventSubs {
		if sub == ch {
			s.eventSubs = append(s.eventSubs[:i], s.eventSubs[i+1:]...)
			return
		}
	}
}

// Emit emits an event to all subscribers.
func (s *Session) Emit(e core.Event) {
	s.mu.RLock()
	subs := make([]chan core.Event, len(s.eventSubs))
	copy(subs, s.eventSubs)
	s.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
			// Drop if full so a slow consumer never blocks a commit
		}
	}
}

func (s *Session) callBeforeCommitHooks(ctx context.Context, t *table.Table) error {
	s.mu.RLock()
	hooks := make([]func(context.Context, *table.Table) error, len(s.beforeCommit))
	copy(hooks, s.beforeCommit)
	s.mu.RUnlock()

	for _, fn := range hooks {
		if err := fn(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) callCommitHooks(ctx context.Context, snap *core.Snapshot) {
	s.mu.RLock()
	hooks := make([]func(context.Context, *core.Snapshot), len(s.onCommit))
	copy(hooks, s.onCommit)
	s.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, snap)
	}
}
