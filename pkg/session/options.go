package session

import (
	"log/slog"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/security"
)

// DefaultOwner names the history of a session without WithOwner.
const DefaultOwner = "self"

// DefaultKeep is the number of revisions kept per owner.
const DefaultKeep = 20

// Option configures a Session.
type Option interface {
	apply(*Session)
}

type optionFunc func(*Session)

func (f optionFunc) apply(s *Session) { f(s) }

// WithHistory records revisions in storage.
func WithHistory(storage core.Storage) Option {
	return optionFunc(func(s *Session) {
		s.history = storage
	})
}

// WithOwner sets the owner revisions are recorded under.
func WithOwner(owner string) Option {
	return optionFunc(func(s *Session) {
		if owner != "" {
			s.owner = owner
		}
	})
}

// WithKeep sets how many revisions to keep per owner.
// Values are clamped to [1, MaxHistoryKeep] (1000).
func WithKeep(n int) Option {
	return optionFunc(func(s *Session) {
		s.keep = security.ClampKeep(n)
	})
}

// WithLogger sets the logger for the session and its table.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(s *Session) {
		if l != nil {
			s.logger = l
		}
	})
}
