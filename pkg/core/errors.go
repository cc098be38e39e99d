package core

import (
	"errors"
	"fmt"
)

// Parse errors. Every ParseError unwraps to exactly one of the kinds below and
// also reports true for errors.Is(err, ErrParse).
var (
	ErrParse             = errors.New("crontab: parse error")
	ErrInvalidRangeValue = errors.New("crontab: invalid range value")
	ErrUnknownRangeValue = errors.New("crontab: unknown range value")
	ErrUnknownFieldPart  = errors.New("crontab: unknown field part")
	ErrInvalidLine       = errors.New("crontab: line is not a crontab entry")
	ErrUnknownSpecial    = errors.New("crontab: unknown special schedule")
	ErrEmptyLine         = errors.New("crontab: empty line")
)

// Validation and lookup errors
var (
	ErrInvalidFilterSchema = errors.New("crontab: invalid filter")
	ErrInvalidUser         = errors.New("crontab: invalid user name")
	ErrInvalidCommand      = errors.New("crontab: invalid command")
	ErrInvalidComment      = errors.New("crontab: invalid comment")
	ErrTableTooLarge       = errors.New("crontab: table exceeds size limit")
	ErrSnapshotNotFound    = errors.New("crontab: snapshot not found")
)

// ParseError describes a field term, range or whole line that failed to parse.
type ParseError struct {
	Kind  error  // one of the ErrXxx parse kinds
	Field string // descriptor name, empty for whole-line failures
	Token string // offending input
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %q", e.Kind, e.Token)
	}
	return fmt.Sprintf("%v for %s: %q", e.Kind, e.Field, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Is lets every ParseError match ErrParse in addition to its kind.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError builds a ParseError of the given kind.
func NewParseError(kind error, field, token string) *ParseError {
	return &ParseError{Kind: kind, Field: field, Token: token}
}

// CommandError reports a failed invocation of the crontab binary.
type CommandError struct {
	Op       string // "load" or "save"
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("crontab: %s failed (exit %d): %s", e.Op, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("crontab: %s failed (exit %d): %v", e.Op, e.ExitCode, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
