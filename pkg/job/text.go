package job

import (
	"regexp"
	"strings"
)

// Pattern matches command or comment text.
type Pattern interface {
	Match(s string) bool
}

type containsPattern string

func (p containsPattern) Match(s string) bool { return strings.Contains(s, string(p)) }

// Contains matches text containing sub.
func Contains(sub string) Pattern {
	return containsPattern(sub)
}

type regexpPattern struct {
	re *regexp.Regexp
}

func (p regexpPattern) Match(s string) bool { return p.re.MatchString(s) }

// Regexp matches text accepted by re.
func Regexp(re *regexp.Regexp) Pattern {
	return regexpPattern{re: re}
}

// PatternOf converts a string, *regexp.Regexp or Pattern into a Pattern.
func PatternOf(v any) (Pattern, bool) {
	switch p := v.(type) {
	case string:
		return Contains(p), true
	case *regexp.Regexp:
		if p == nil {
			return nil, false
		}
		return Regexp(p), true
	case Pattern:
		return p, p != nil
	}
	return nil, false
}

// Command is the executable part of a job.
type Command string

// Match reports whether the command matches p.
func (c Command) Match(p Pattern) bool { return p != nil && p.Match(string(c)) }

func (c Command) String() string { return string(c) }

// Comment is the inline comment of a job, empty when absent.
type Comment string

// Match reports whether the comment matches p.
func (c Comment) Match(p Pattern) bool { return p != nil && p.Match(string(c)) }

func (c Comment) String() string { return string(c) }
