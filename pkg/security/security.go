// Package security provides validation, sanitization, and limits for the crontab package.
package security

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jdziat/simple-crontab/pkg/core"
)

// Security limits and configuration
const (
	// MaxUserNameLength is the maximum length for a crontab owner name
	MaxUserNameLength = 32

	// MaxCommandLength is the maximum length for a job command
	MaxCommandLength = 4096

	// MaxCommentLength is the maximum length for an inline comment
	MaxCommentLength = 1024

	// MaxTableSize is the maximum size in bytes of a crontab text (1MB)
	MaxTableSize = 1 << 20

	// MaxErrorMessageLength is the maximum length for captured stderr in errors
	MaxErrorMessageLength = 4096

	// MaxHistoryKeep is the hard limit for retained snapshots per owner
	MaxHistoryKeep = 1000
)

// validUserName matches POSIX-style login names, optionally ending in "$"
var validUserName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*\$?$`)

// ValidateUser validates a crontab owner name passed to "crontab -u".
func ValidateUser(name string) error {
	if name == "" || len(name) > MaxUserNameLength {
		return core.ErrInvalidUser
	}
	if !validUserName.MatchString(name) {
		return core.ErrInvalidUser
	}
	return nil
}

// ValidateCommand rejects commands that would not survive a render as a single line.
func ValidateCommand(cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		return core.ErrInvalidCommand
	}
	if len(cmd) > MaxCommandLength || strings.ContainsAny(cmd, "\n\x00") {
		return core.ErrInvalidCommand
	}
	return nil
}

// ValidateComment rejects comments that would break the line they are rendered on.
func ValidateComment(comment string) error {
	if len(comment) > MaxCommentLength || strings.ContainsAny(comment, "\n\x00") {
		return core.ErrInvalidComment
	}
	return nil
}

// ValidateTableSize enforces MaxTableSize on loaded or rendered text.
func ValidateTableSize(text string) error {
	if len(text) > MaxTableSize {
		return core.ErrTableTooLarge
	}
	return nil
}

// SanitizeErrorMessage truncates and sanitizes captured output for error messages
func SanitizeErrorMessage(msg string) string {
	if msg == "" {
		return ""
	}

	// Remove any null bytes or control characters (except newlines)
	var sanitized strings.Builder
	sanitized.Grow(len(msg))

	for _, r := range msg {
		if r == '\n' || r == '\t' || (r >= 32 && r != 127) {
			sanitized.WriteRune(r)
		}
	}

	result := strings.TrimSpace(sanitized.String())

	if utf8.RuneCountInString(result) > MaxErrorMessageLength {
		runes := []rune(result)
		result = string(runes[:MaxErrorMessageLength-3]) + "..."
	}

	return result
}

// ClampKeep ensures a history retention count is within [1, MaxHistoryKeep]
func ClampKeep(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxHistoryKeep {
		return MaxHistoryKeep
	}
	return n
}
