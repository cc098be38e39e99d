package job

import (
	"regexp"
	"strings"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/field"
)

var (
	// five field tokens, then the command, then an optional " #comment".
	// Only a "#" preceded by whitespace starts the comment, and the command
	// never starts with "#".
	entryRe = regexp.MustCompile(`^\s*([^@#\s]+)\s+([^@#\s]+)\s+([^@#\s]+)\s+([^@#\s]+)\s+([^@#\s]+)\s+((?:[^#\s].*?)?)(?:\s+#\s*(.*))?$`)
	// @name, then the command, then an optional " #comment"
	specialRe = regexp.MustCompile(`^\s*@(\w+)\s+((?:[^#\s].*?)?)(?:\s+#\s*(.*))?$`)
)

// Job is one crontab entry.
type Job struct {
	fields  [5]*field.Field
	special string
	command Command
	comment Comment
	valid   bool
	raw     string
}

// New builds a valid job that runs command every minute.
// It panics when command is empty.
func New(command, comment string) *Job {
	if command == "" {
		panic("job: expected either a crontab line or a command")
	}
	return &Job{
		fields:  emptyFields(),
		command: Command(command),
		comment: Comment(comment),
		valid:   true,
	}
}

// Parse parses one crontab line. It always returns a Job; when err is
// non-nil the Job is an invalid placeholder that renders the line verbatim.
func Parse(line string) (*Job, error) {
	j := &Job{fields: emptyFields(), raw: line}
	if strings.TrimSpace(line) == "" {
		return j, core.NewParseError(core.ErrEmptyLine, "", line)
	}

	if m := entryRe.FindStringSubmatch(line); m != nil {
		fields, err := parseFields(m[1:6])
		if err != nil {
			return j, err
		}
		j.fields = fields
		j.command = Command(m[6])
		j.comment = Comment(m[7])
		j.valid = true
		return j, nil
	}

	// A "#" ahead of the first "@" means the line is a comment that
	// happens to contain an @word.
	hash, at := strings.IndexByte(line, '#'), strings.IndexByte(line, '@')
	if hash >= 0 && at > hash {
		return j, core.NewParseError(core.ErrInvalidLine, "", line)
	}

	m := specialRe.FindStringSubmatch(line)
	if m == nil {
		return j, core.NewParseError(core.ErrInvalidLine, "", line)
	}
	if err := j.applySpecial(m[1]); err != nil {
		return j, err
	}
	j.command = Command(m[2])
	j.comment = Comment(m[3])
	j.valid = true
	return j, nil
}

func emptyFields() [5]*field.Field {
	var fields [5]*field.Field
	for i, d := range field.Descriptors {
		fields[i] = field.New(d)
	}
	return fields
}

func parseFields(tokens []string) ([5]*field.Field, error) {
	var fields [5]*field.Field
	for i, d := range field.Descriptors {
		f, err := field.Parse(d, tokens[i])
		if err != nil {
			return fields, err
		}
		fields[i] = f
	}
	return fields, nil
}

// applySpecial expands name (without "@") into the marker or the fields.
func (j *Job) applySpecial(name string) error {
	value, ok := Expand(name)
	if !ok {
		return core.NewParseError(core.ErrUnknownSpecial, "", "@"+name)
	}
	if value == Reboot {
		j.fields = emptyFields()
		j.special = Reboot
		return nil
	}
	fields, err := parseFields(strings.Fields(value))
	if err != nil {
		return err
	}
	j.fields = fields
	j.special = ""
	return nil
}

// SetSchedule replaces the schedule with a five-field expression or an
// @name shorthand. On error the job is left unchanged.
func (j *Job) SetSchedule(expr string) error {
	expr = strings.TrimSpace(expr)
	if name, ok := strings.CutPrefix(expr, "@"); ok {
		return j.applySpecial(name)
	}
	tokens := strings.Fields(expr)
	if len(tokens) != 5 {
		return core.NewParseError(core.ErrInvalidLine, "", expr)
	}
	fields, err := parseFields(tokens)
	if err != nil {
		return err
	}
	j.fields = fields
	j.special = ""
	return nil
}

// Valid reports whether the job was parsed or constructed successfully.
func (j *Job) Valid() bool { return j.valid }

// Special returns the special marker (currently only "@reboot"), or "".
func (j *Job) Special() string { return j.special }

// EveryReboot switches the job to the @reboot marker.
func (j *Job) EveryReboot() {
	j.Clear()
	j.special = Reboot
}

// Clear drops the special marker and empties every field, leaving an
// every-minute schedule. Command and comment are untouched.
func (j *Job) Clear() {
	j.special = ""
	for _, f := range j.fields {
		f.Clear()
	}
}

// Minute returns the live minute field.
func (j *Job) Minute() *field.Field { return j.fields[0] }

// Hour returns the live hour field.
func (j *Job) Hour() *field.Field { return j.fields[1] }

// Dom returns the live day-of-month field.
func (j *Job) Dom() *field.Field { return j.fields[2] }

// Month returns the live month field.
func (j *Job) Month() *field.Field { return j.fields[3] }

// Dow returns the live day-of-week field.
func (j *Job) Dow() *field.Field { return j.fields[4] }

// Fields returns the five live fields in crontab order.
func (j *Job) Fields() []*field.Field {
	return j.fields[:]
}

// Command returns the command text.
func (j *Job) Command() string { return string(j.command) }

// SetCommand replaces the command and returns it.
func (j *Job) SetCommand(command string) string {
	j.command = Command(command)
	return command
}

// Comment returns the inline comment, "" when there is none.
func (j *Job) Comment() string { return string(j.comment) }

// SetComment replaces the inline comment and returns it. An empty string
// removes the comment.
func (j *Job) SetComment(comment string) string {
	j.comment = Comment(comment)
	return comment
}

// MatchCommand reports whether the command matches p.
func (j *Job) MatchCommand(p Pattern) bool { return j.command.Match(p) }

// MatchComment reports whether the comment matches p.
func (j *Job) MatchComment(p Pattern) bool { return j.comment.Match(p) }

// Schedule returns the time part as it renders: the marker, an @name
// shorthand, or the five fields joined by spaces.
func (j *Job) Schedule() string {
	if j.special != "" {
		return j.special
	}
	return shorthand(j.Expression())
}

// Expression returns the five fields joined by spaces, without shorthand
// folding. It is "* * * * *" for @reboot jobs.
func (j *Job) Expression() string {
	tokens := make([]string, len(j.fields))
	for i, f := range j.fields {
		tokens[i] = f.String()
	}
	return strings.Join(tokens, " ")
}

// Render returns the crontab line for the job. Invalid placeholders
// render the original line.
func (j *Job) Render() string {
	if !j.valid {
		return j.raw
	}
	result := j.Schedule() + " " + string(j.command)
	if j.comment != "" {
		result += " #" + string(j.comment)
	}
	return result
}

func (j *Job) String() string {
	return j.Render()
}
