// Package system provides core.Backend implementations that read and write
// crontab text outside the process.
//
// Crontab invokes the system crontab binary ("crontab -l" to load,
// "crontab -" to save) with optional "-u user" and sudo prefix. File keeps
// the text in a regular file, and Memory keeps it in process for tests and
// embedding.
//
// Most users should import the root package github.com/jdziat/simple-crontab
// which re-exports these types.
package system
