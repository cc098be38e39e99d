// Package crontab models, parses and renders POSIX crontab tables.
//
// This is the main package users should import. It re-exports all public
// types from the internal pkg/ packages for a clean API surface.
//
// Basic usage:
//
//	// Load the invoking user's crontab
//	backend, _ := crontab.NewCrontab()
//	sess := crontab.NewSession(backend)
//	sess.Open(ctx)
//
//	// Edit it
//	tab := sess.Table()
//	tab.RemoveQuery(crontab.Query{"comment": "legacy"})
//	tab.Create("/usr/local/bin/backup", crontab.WithSchedule("@daily"), crontab.WithComment("backup"))
//
//	// Save it
//	sess.Commit(ctx)
package crontab

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/field"
	"github.com/jdziat/simple-crontab/pkg/job"
	"github.com/jdziat/simple-crontab/pkg/lint"
	"github.com/jdziat/simple-crontab/pkg/security"
	"github.com/jdziat/simple-crontab/pkg/session"
	"github.com/jdziat/simple-crontab/pkg/storage"
	"github.com/jdziat/simple-crontab/pkg/system"
	"github.com/jdziat/simple-crontab/pkg/table"
)

// Type aliases
type (
	// Table is an ordered crontab of jobs and raw lines.
	Table = table.Table

	// TableOption configures a Table.
	TableOption = table.Option

	// CreateOption configures a job built by Table.Create.
	CreateOption = table.CreateOption

	// Filter selects jobs by command and comment pattern.
	Filter = table.Filter

	// VarFilter selects environment lines by name and value pattern.
	VarFilter = table.VarFilter

	// Query is the map form of a Filter.
	Query = table.Query

	// Job is one crontab entry.
	Job = job.Job

	// Var is an environment assignment line.
	Var = job.Var

	// Pattern matches command or comment text.
	Pattern = job.Pattern

	// Field is one of the five time fields of a job.
	Field = field.Field

	// Range is a from-to/step term of a field.
	Range = field.Range

	// Descriptor names a time field and its bounds.
	Descriptor = field.Descriptor

	// ParseError describes a field, range or line that failed to parse.
	ParseError = core.ParseError

	// CommandError reports a failed invocation of the crontab binary.
	CommandError = core.CommandError

	// Backend loads and saves crontab text.
	Backend = core.Backend

	// Storage persists crontab revisions.
	Storage = core.Storage

	// Snapshot is one saved revision.
	Snapshot = core.Snapshot

	// Event is the interface for all session events.
	Event = core.Event

	// TableLoaded is emitted after a session loads its table.
	TableLoaded = core.TableLoaded

	// TableSaved is emitted after a session commits its table.
	TableSaved = core.TableSaved

	// SnapshotRestored is emitted when a session restores a revision.
	SnapshotRestored = core.SnapshotRestored

	// Session ties a table to its backend and history.
	Session = session.Session

	// SessionOption configures a Session.
	SessionOption = session.Option

	// Crontab is the backend that runs the crontab binary.
	Crontab = system.Crontab

	// CrontabOption configures a Crontab backend.
	CrontabOption = system.Option

	// File is the backend that reads and writes a regular file.
	File = system.File

	// Memory is the in-process backend.
	Memory = system.Memory

	// GormStorage implements Storage using GORM.
	GormStorage = storage.GormStorage

	// Issue is one lint finding.
	Issue = lint.Issue
)

// Field descriptors
var (
	Minute     = field.Minute
	Hour       = field.Hour
	DayOfMonth = field.DayOfMonth
	Month      = field.Month
	DayOfWeek  = field.DayOfWeek
)

// Reboot is the @reboot marker.
const Reboot = job.Reboot

// Snapshot sources
const (
	SourceLoad    = core.SourceLoad
	SourceCommit  = core.SourceCommit
	SourceRestore = core.SourceRestore
)

// Security limits
const (
	MaxUserNameLength     = security.MaxUserNameLength
	MaxCommandLength      = security.MaxCommandLength
	MaxCommentLength      = security.MaxCommentLength
	MaxTableSize          = security.MaxTableSize
	MaxErrorMessageLength = security.MaxErrorMessageLength
	MaxHistoryKeep        = security.MaxHistoryKeep
)

// Error variables
var (
	ErrParse               = core.ErrParse
	ErrInvalidRangeValue   = core.ErrInvalidRangeValue
	ErrUnknownRangeValue   = core.ErrUnknownRangeValue
	ErrUnknownFieldPart    = core.ErrUnknownFieldPart
	ErrInvalidLine         = core.ErrInvalidLine
	ErrUnknownSpecial      = core.ErrUnknownSpecial
	ErrEmptyLine           = core.ErrEmptyLine
	ErrInvalidFilterSchema = core.ErrInvalidFilterSchema
	ErrInvalidUser         = core.ErrInvalidUser
	ErrInvalidCommand      = core.ErrInvalidCommand
	ErrInvalidComment      = core.ErrInvalidComment
	ErrTableTooLarge       = core.ErrTableTooLarge
	ErrSnapshotNotFound    = core.ErrSnapshotNotFound
	ErrNoHistory           = session.ErrNoHistory
)

// New returns an empty table.
func New(opts ...TableOption) *Table {
	return table.New(opts...)
}

// Load returns a table holding text.
func Load(text string, opts ...TableOption) *Table {
	return table.Load(text, opts...)
}

// NewJob builds a job that runs command every minute. It panics when
// command is empty.
func NewJob(command, comment string) *Job {
	return job.New(command, comment)
}

// ParseJob parses one crontab line.
func ParseJob(line string) (*Job, error) {
	return job.Parse(line)
}

// ParseVar parses a NAME=value line.
func ParseVar(line string) (*Var, error) {
	return job.ParseVar(line)
}

// ParseQuery validates a map query.
func ParseQuery(q Query) (Filter, error) {
	return table.ParseQuery(q)
}

// Diff returns a unified diff between two rendered tables.
func Diff(before, after, fromName, toName string) string {
	return table.Diff(before, after, fromName, toName)
}

// Contains matches text holding sub.
func Contains(sub string) Pattern {
	return job.Contains(sub)
}

// Regexp matches text matched by re.
func Regexp(re *regexp.Regexp) Pattern {
	return job.Regexp(re)
}

// Table options

// WithTableLogger sets the logger a table reports demoted lines to.
func WithTableLogger(l *slog.Logger) TableOption {
	return table.WithLogger(l)
}

// Create options

// WithSchedule sets a five-field expression or @name shorthand.
func WithSchedule(expr string) CreateOption {
	return table.WithSchedule(expr)
}

// At pins a new job to the minute, hour, day and month of t.
func At(t time.Time) CreateOption {
	return table.At(t)
}

// WithComment sets the inline comment of a new job.
func WithComment(c string) CreateOption {
	return table.WithComment(c)
}

// Backends

// NewCrontab creates a backend that runs the crontab binary.
func NewCrontab(opts ...CrontabOption) (*Crontab, error) {
	return system.NewCrontab(opts...)
}

// WithUser manages another user's crontab.
func WithUser(user string) CrontabOption {
	return system.WithUser(user)
}

// WithBinary overrides the crontab executable.
func WithBinary(path string) CrontabOption {
	return system.WithBinary(path)
}

// WithSudo runs the crontab binary through sudo.
func WithSudo(enabled bool) CrontabOption {
	return system.WithSudo(enabled)
}

// NewFile creates a backend for a regular file.
func NewFile(path string) *File {
	return system.NewFile(path)
}

// NewMemory creates an in-process backend holding text.
func NewMemory(text string) *Memory {
	return system.NewMemory(text)
}

// History storage

// NewGormStorage creates a new GORM-backed storage.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return storage.NewGormStorage(db)
}

// OpenStorage connects to a SQLite path or PostgreSQL URL and migrates it.
func OpenStorage(ctx context.Context, dsn string) (*GormStorage, error) {
	return storage.Open(ctx, dsn)
}

// Sessions

// NewSession creates a session over backend.
func NewSession(backend Backend, opts ...SessionOption) *Session {
	return session.New(backend, opts...)
}

// WithHistory records session revisions in storage.
func WithHistory(s Storage) SessionOption {
	return session.WithHistory(s)
}

// WithOwner sets the owner session revisions are recorded under.
func WithOwner(owner string) SessionOption {
	return session.WithOwner(owner)
}

// WithKeep sets how many revisions to keep per owner.
func WithKeep(n int) SessionOption {
	return session.WithKeep(n)
}

// WithLogger sets the logger for a session and its table.
func WithLogger(l *slog.Logger) SessionOption {
	return session.WithLogger(l)
}

// Lint

// Check returns lint issues for one job.
func Check(j *Job) []Issue {
	return lint.Check(j)
}

// Lint returns lint issues for every job in t.
func Lint(t *Table) []Issue {
	return lint.Table(t)
}

// Validation

// ValidateUser validates a crontab owner name.
func ValidateUser(name string) error {
	return security.ValidateUser(name)
}

// ValidateCommand validates a job command.
func ValidateCommand(cmd string) error {
	return security.ValidateCommand(cmd)
}

// SanitizeErrorMessage truncates and sanitizes captured output.
func SanitizeErrorMessage(msg string) string {
	return security.SanitizeErrorMessage(msg)
}
