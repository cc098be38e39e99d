// Package core provides the fundamental types and interfaces for the crontab package.
//
// This package contains:
//   - Error kinds and the ParseError type reported by the field, job and table parsers
//   - The Backend interface describing where crontab text is loaded from and saved to
//   - The Snapshot model with GORM annotations and the Storage interface for history
//   - Event types emitted by editing sessions
//
// Most users should import the root package github.com/jdziat/simple-crontab
// instead of this package directly.
package core
