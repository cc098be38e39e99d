// Package job parses and renders single crontab entries.
//
// A Job is either a five-field schedule or the @reboot marker, plus a
// command and an optional inline comment. Shorthands such as @daily are
// expanded into fields on parse and folded back into their @name on render.
//
// Validity is decided once, when the job is parsed or constructed. Edits
// made afterwards through the Field accessors are not re-validated.
package job
