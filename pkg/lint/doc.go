// Package lint checks crontab jobs for schedules that parse but are
// unlikely to do what the author meant.
//
// Every field-based schedule is cross-checked with the standard five-field
// parser from github.com/robfig/cron/v3, which catches values written
// through field.Field.On that the table itself accepts unchecked. Lint
// never computes run times.
package lint
