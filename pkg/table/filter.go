package table

import (
	"fmt"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/job"
)

// Filter selects jobs whose command and comment both match. A nil
// pattern places no constraint, so the zero Filter matches every job.
type Filter struct {
	Command job.Pattern
	Comment job.Pattern
}

// Query is the map form of a Filter, keyed by "command" and/or "comment".
// Values may be a string (substring match), a *regexp.Regexp or a job.Pattern.
type Query map[string]any

// projections are the only keys a Query may name.
var projections = map[string]func(f *Filter, p job.Pattern){
	"command": func(f *Filter, p job.Pattern) { f.Command = p },
	"comment": func(f *Filter, p job.Pattern) { f.Comment = p },
}

// ParseQuery validates q and converts it to a Filter. Unknown keys and
// unsupported value types are rejected with ErrInvalidFilterSchema.
func ParseQuery(q Query) (Filter, error) {
	var f Filter
	for key, value := range q {
		set, ok := projections[key]
		if !ok {
			return Filter{}, fmt.Errorf("%w: unknown key %q", core.ErrInvalidFilterSchema, key)
		}
		p, ok := job.PatternOf(value)
		if !ok {
			return Filter{}, fmt.Errorf("%w: unsupported %s value %T", core.ErrInvalidFilterSchema, key, value)
		}
		set(&f, p)
	}
	return f, nil
}

// Match reports whether j satisfies every pattern in the filter.
func (f Filter) Match(j *job.Job) bool {
	if f.Command != nil && !j.MatchCommand(f.Command) {
		return false
	}
	if f.Comment != nil && !j.MatchComment(f.Comment) {
		return false
	}
	return true
}

// VarFilter selects environment lines by name and value. A nil pattern
// places no constraint.
type VarFilter struct {
	Name  job.Pattern
	Value job.Pattern
}

// Match reports whether v satisfies every pattern in the filter.
func (f VarFilter) Match(v *job.Var) bool {
	if f.Name != nil && !f.Name.Match(v.Name) {
		return false
	}
	if f.Value != nil && !f.Value.Match(v.Value) {
		return false
	}
	return true
}
