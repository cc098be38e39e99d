// Package table holds a whole crontab as an ordered mix of parsed jobs and
// raw lines.
//
// This package includes:
//   - Table: load, render, query, create, remove and reset
//   - Filter and Query: command/comment matching, typed or map based
//   - Option and CreateOption: functional options for tables and new jobs
//
// Lines that do not parse as jobs (comments, blanks, environment
// assignments, malformed entries) are kept verbatim, so a load, edit and
// render cycle never drops text it does not understand.
//
// A Table is not safe for concurrent use; keep it owned by one goroutine.
package table
