package table

import (
	"log/slog"
	"time"
)

// Option configures a Table.
type Option interface {
	apply(*Table)
}

type optionFunc func(*Table)

func (f optionFunc) apply(t *Table) { f(t) }

// WithLogger sets the logger used to report demoted lines at debug level.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(t *Table) {
		if l != nil {
			t.logger = l
		}
	})
}

// CreateOptions holds the schedule and comment for a new job.
type CreateOptions struct {
	Schedule string
	At       *time.Time
	Comment  string
}

// CreateOption modifies CreateOptions.
type CreateOption interface {
	Apply(*CreateOptions)
}

type createOptionFunc func(*CreateOptions)

func (f createOptionFunc) Apply(o *CreateOptions) { f(o) }

// WithSchedule sets a five-field expression or @name shorthand.
func WithSchedule(expr string) CreateOption {
	return createOptionFunc(func(o *CreateOptions) {
		o.Schedule = expr
	})
}

// At pins the job to the minute, hour, day and month of t. The day of
// week stays "*".
func At(t time.Time) CreateOption {
	return createOptionFunc(func(o *CreateOptions) {
		o.At = &t
	})
}

// WithComment sets the inline comment.
func WithComment(c string) CreateOption {
	return createOptionFunc(func(o *CreateOptions) {
		o.Comment = c
	})
}
