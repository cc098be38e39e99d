// Package field models the five time fields of a crontab entry.
//
// This package includes:
//   - Descriptor: static bounds and symbolic names for one field position
//   - Range: a single from-to[/step] or *[/step] term
//   - Field: the ordered, comma-joined list of terms for one field
//
// A Field is owned by the job that created it. Accessors hand out the live
// Field, so edits made through it show up in the job's next render.
package field
