// Package session ties a crontab table to the backend it is loaded from
// and saved to, with optional revision history.
//
// A Session loads text from a core.Backend into a table.Table, lets the
// caller edit it, and commits the render back. When a core.Storage is
// configured every load and commit is recorded as a core.Snapshot, old
// revisions are pruned, and any revision can be restored.
//
// Most users should import the root package github.com/jdziat/simple-crontab
// which re-exports these types.
package session
