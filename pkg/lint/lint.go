package lint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/jdziat/simple-crontab/pkg/field"
	"github.com/jdziat/simple-crontab/pkg/job"
	"github.com/jdziat/simple-crontab/pkg/table"
)

// Severity ranks an Issue.
type Severity string

const (
	// SeverityError marks a schedule cron will reject or never fire.
	SeverityError Severity = "error"
	// SeverityWarning marks a schedule that runs but probably not as intended.
	SeverityWarning Severity = "warning"
)

// Issue is one finding for one job.
type Issue struct {
	Index    int    // position in Table.Jobs, 0 for Check
	Field    string // descriptor name, empty for job-wide findings
	Severity Severity
	Message  string
	Job      *job.Job
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// daysIn is the longest length of each month, leap years included.
var daysIn = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Check returns the issues found in j. Invalid and @reboot jobs have none.
func Check(j *job.Job) []Issue {
	if j == nil || !j.Valid() || j.Special() == job.Reboot {
		return nil
	}

	var issues []Issue
	add := func(f string, sev Severity, format string, args ...any) {
		issues = append(issues, Issue{Field: f, Severity: sev, Message: fmt.Sprintf(format, args...), Job: j})
	}

	for _, f := range j.Fields() {
		d := f.Descriptor()
		for _, p := range f.Parts() {
			if v, ok := p.(field.Value); ok && !d.Contains(int(v)) {
				add(d.Name, SeverityError, "value %d outside %d-%d", v, d.Min, d.Max)
			}
		}
	}
	if len(issues) > 0 {
		return issues
	}

	if _, err := parser.Parse(standardExpression(j)); err != nil {
		add("", SeverityError, "rejected by cron parser: %v", err)
		return issues
	}

	if never(j) {
		add(field.DayOfMonth.Name, SeverityError, "day %s never occurs in month %s", j.Dom(), j.Month())
	}
	if restricted(j.Dom()) && restricted(j.Dow()) {
		add("", SeverityWarning, "day of month and day of week are both restricted; cron runs when either matches")
	}
	if strings.Contains(strings.ReplaceAll(j.Command(), `\%`, ""), "%") {
		add("", SeverityWarning, "unescaped %% in command is turned into a newline by cron")
	}
	return issues
}

// Table checks every job in t, in order.
func Table(t *table.Table) []Issue {
	var issues []Issue
	for i, j := range t.Jobs() {
		for _, issue := range Check(j) {
			issue.Index = i
			issues = append(issues, issue)
		}
	}
	return issues
}

// standardExpression renders j with day-of-week 7 folded to 0, since the
// standard parser only accepts 0-6.
func standardExpression(j *job.Job) string {
	tokens := make([]string, 0, 5)
	for _, f := range j.Fields()[:4] {
		tokens = append(tokens, f.String())
	}

	dow := j.Dow()
	if len(dow.Parts()) == 0 {
		return strings.Join(append(tokens, "*"), " ")
	}
	var parts []string
	for _, p := range dow.Parts() {
		parts = append(parts, foldSunday(p)...)
	}
	return strings.Join(append(tokens, strings.Join(parts, ",")), " ")
}

func foldSunday(p field.Part) []string {
	switch p := p.(type) {
	case field.Value:
		if p == 7 {
			return []string{"0"}
		}
	case *field.Range:
		if p.To() != 7 || p.String() == "*" || strings.HasPrefix(p.String(), "*/") {
			break
		}
		var out []string
		if p.From() <= 6 {
			term := strconv.Itoa(p.From()) + "-6"
			if p.Step() != 1 {
				term += "/" + strconv.Itoa(p.Step())
			}
			out = append(out, term)
		}
		if (7-p.From())%p.Step() == 0 {
			out = append(out, "0")
		}
		return out
	}
	return []string{p.String()}
}

// restricted reports whether f narrows the days cron considers. Like
// cron itself, a field starting with "*" counts as unrestricted.
func restricted(f *field.Field) bool {
	return !strings.HasPrefix(f.String(), "*")
}

// never reports whether every listed day falls past the end of every
// listed month. Only literal days and months are considered.
func never(j *job.Job) bool {
	days, ok := literals(j.Dom())
	if !ok || len(days) == 0 {
		return false
	}
	months, ok := literals(j.Month())
	if !ok || len(months) == 0 {
		return false
	}
	for _, m := range months {
		for _, d := range days {
			if m >= 1 && m <= 12 && d <= daysIn[m] {
				return false
			}
		}
	}
	return true
}

// literals returns the values of f when it holds only field.Value parts.
func literals(f *field.Field) ([]int, bool) {
	var values []int
	for _, p := range f.Parts() {
		v, ok := p.(field.Value)
		if !ok {
			return nil, false
		}
		values = append(values, int(v))
	}
	return values, true
}
