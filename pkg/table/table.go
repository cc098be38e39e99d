package table

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/job"
	"github.com/jdziat/simple-crontab/pkg/security"
)

// entry is one rendered line: a job, or raw text when job is nil.
type entry struct {
	raw string
	job *job.Job
}

func (e entry) String() string {
	switch {
	case e.job == nil:
		return e.raw
	case !e.job.Valid():
		return "# " + e.job.Render()
	default:
		return e.job.Render()
	}
}

// Table is an ordered crontab. jobs is always the subsequence of lines
// holding valid jobs, in the same order.
type Table struct {
	lines  []entry
	jobs   []*job.Job
	backup struct {
		lines []entry
		jobs  []*job.Job
		text  string
	}
	logger *slog.Logger
}

// New returns an empty table.
func New(opts ...Option) *Table {
	t := &Table{logger: slog.Default()}
	for _, opt := range opts {
		opt.apply(t)
	}
	return t
}

// Load returns a table holding text.
func Load(text string, opts ...Option) *Table {
	t := New(opts...)
	t.Load(text)
	return t
}

// Load replaces the contents of the table with text. Each line that parses
// becomes a job; every other line is kept verbatim. Trailing blank lines
// are dropped. The result is remembered for Reset.
func (t *Table) Load(text string) {
	t.lines, t.jobs = nil, nil
	for i, line := range strings.Split(text, "\n") {
		j, err := job.Parse(line)
		if err == nil {
			t.lines = append(t.lines, entry{job: j})
			t.jobs = append(t.jobs, j)
			continue
		}
		if !errors.Is(err, core.ErrEmptyLine) {
			t.logger.Debug("crontab: keeping unparsed line", "line", i+1, "error", err)
		}
		t.lines = append(t.lines, entry{raw: line})
	}
	t.truncate()
	t.Checkpoint()
}

// Checkpoint makes the current contents the state Reset returns to and
// Diff compares against. Load calls it.
func (t *Table) Checkpoint() {
	t.backup.lines = slices.Clone(t.lines)
	t.backup.jobs = slices.Clone(t.jobs)
	t.backup.text = t.Render()
}

// truncate pops blank lines off the end.
func (t *Table) truncate() {
	for len(t.lines) > 0 && strings.TrimSpace(t.lines[len(t.lines)-1].String()) == "" {
		t.lines = t.lines[:len(t.lines)-1]
	}
}

// Render returns the crontab text, ending in a single newline.
func (t *Table) Render() string {
	tokens := make([]string, len(t.lines))
	for i, e := range t.lines {
		tokens[i] = e.String()
	}
	return strings.TrimSpace(strings.Join(tokens, "\n")) + "\n"
}

func (t *Table) String() string {
	return t.Render()
}

// Len returns the number of lines, jobs and raw text alike.
func (t *Table) Len() int {
	return len(t.lines)
}

// Jobs returns a copy of the job index.
func (t *Table) Jobs() []*job.Job {
	return slices.Clone(t.jobs)
}

// Find returns the jobs matching every pattern in f.
func (t *Table) Find(f Filter) []*job.Job {
	var result []*job.Job
	for _, j := range t.jobs {
		if f.Match(j) {
			result = append(result, j)
		}
	}
	return result
}

// Query is Find for a map filter. A query naming an unknown key or using
// an unsupported value type matches nothing.
func (t *Table) Query(q Query) []*job.Job {
	f, err := ParseQuery(q)
	if err != nil {
		t.logger.Debug("crontab: rejected query", "error", err)
		return nil
	}
	return t.Find(f)
}

// Parse builds a job from line without adding it to the table.
func (t *Table) Parse(line string) (*job.Job, error) {
	return job.Parse(line)
}

// Create appends a new job running command. Without a schedule option the
// job runs every minute. It returns nil when the command is unusable or
// the schedule does not parse. When both WithSchedule and At are given,
// At wins.
func (t *Table) Create(command string, opts ...CreateOption) *job.Job {
	o := &CreateOptions{}
	for _, opt := range opts {
		opt.Apply(o)
	}

	if err := security.ValidateCommand(command); err != nil {
		t.logger.Debug("crontab: rejected command", "error", err)
		return nil
	}
	if err := security.ValidateComment(o.Comment); err != nil {
		t.logger.Debug("crontab: rejected comment", "error", err)
		return nil
	}

	j := job.New(command, o.Comment)
	if o.Schedule != "" {
		if err := j.SetSchedule(o.Schedule); err != nil {
			t.logger.Debug("crontab: rejected schedule", "schedule", o.Schedule, "error", err)
			return nil
		}
	}
	if o.At != nil {
		at := *o.At
		j.Clear()
		j.Minute().On(at.Minute())
		j.Hour().On(at.Hour())
		j.Dom().On(at.Day())
		j.Month().On(int(at.Month()))
	}

	t.jobs = append(t.jobs, j)
	t.lines = append(t.lines, entry{job: j})
	return j
}

// Remove deletes the given jobs by identity and reports whether any
// were present. Survivors keep their order.
func (t *Table) Remove(jobs ...*job.Job) bool {
	removed := false
	for _, target := range jobs {
		if target != nil && t.remove(target) {
			removed = true
		}
	}
	t.truncate()
	return removed
}

// RemoveMatching deletes every job matched by f.
func (t *Table) RemoveMatching(f Filter) bool {
	return t.Remove(t.Find(f)...)
}

// RemoveQuery deletes every job matched by q. An invalid query removes nothing.
func (t *Table) RemoveQuery(q Query) bool {
	return t.Remove(t.Query(q)...)
}

func (t *Table) remove(target *job.Job) bool {
	before := len(t.jobs)
	t.jobs = slices.DeleteFunc(t.jobs, func(j *job.Job) bool { return j == target })
	t.lines = slices.DeleteFunc(t.lines, func(e entry) bool { return e.job == target })
	return len(t.jobs) < before
}

// Reset restores the lines and jobs captured by the last Load or
// Checkpoint, undoing every Create and Remove since. Fields edited in place on surviving jobs
// are not restored.
func (t *Table) Reset() {
	t.lines = slices.Clone(t.backup.lines)
	t.jobs = slices.Clone(t.backup.jobs)
}

// Vars returns the environment assignments among the raw lines.
func (t *Table) Vars() []*job.Var {
	var vars []*job.Var
	for _, e := range t.lines {
		if e.job != nil {
			continue
		}
		if v, err := job.ParseVar(e.raw); err == nil {
			vars = append(vars, v)
		}
	}
	return vars
}

// FindVars returns the environment assignments matched by f.
func (t *Table) FindVars(f VarFilter) []*job.Var {
	var out []*job.Var
	for _, v := range t.Vars() {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

// Snapshot captures the rendered table as a history revision for owner.
// The ID is left for the storage to assign.
func (t *Table) Snapshot(owner, source string) *core.Snapshot {
	return &core.Snapshot{
		Owner:   owner,
		Content: t.Render(),
		Jobs:    len(t.jobs),
		Lines:   len(t.lines),
		Source:  source,
	}
}
