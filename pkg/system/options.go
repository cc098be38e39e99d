package system

import (
	"log/slog"
	"os"
)

// DefaultBinary is the crontab executable looked up on PATH.
const DefaultBinary = "crontab"

// Option configures a Crontab backend.
type Option interface {
	apply(*Crontab)
}

type optionFunc func(*Crontab)

func (f optionFunc) apply(c *Crontab) { f(c) }

// WithUser manages another user's crontab through "-u user".
func WithUser(user string) Option {
	return optionFunc(func(c *Crontab) {
		c.user = user
	})
}

// WithBinary overrides the crontab executable.
func WithBinary(path string) Option {
	return optionFunc(func(c *Crontab) {
		if path != "" {
			c.binary = path
		}
	})
}

// WithSudo runs the crontab binary through sudo.
func WithSudo(enabled bool) Option {
	return optionFunc(func(c *Crontab) {
		c.sudo = enabled
	})
}

// WithLogger sets the logger for subprocess activity.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *Crontab) {
		if l != nil {
			c.logger = l
		}
	})
}

// FileOption configures a File backend.
type FileOption interface {
	apply(*File)
}

type fileOptionFunc func(*File)

func (f fileOptionFunc) apply(b *File) { f(b) }

// WithPerm sets the mode used when the file is created.
func WithPerm(perm os.FileMode) FileOption {
	return fileOptionFunc(func(b *File) {
		b.perm = perm
	})
}
