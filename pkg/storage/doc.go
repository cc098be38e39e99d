// Package storage provides history persistence for crontab revisions.
//
// This package includes:
//   - GormStorage: A GORM-based implementation of core.Storage supporting
//     SQLite and PostgreSQL
//   - Open: DSN-based connection helper with pool configuration
//   - GormStorage.Backend: a core.Backend view of one owner's latest revision
//
// The Storage interface is defined in pkg/core and must be implemented
// by any custom storage backend.
//
// Most users should import the root package github.com/jdziat/simple-crontab
// which provides NewGormStorage() to create storage instances.
package storage
