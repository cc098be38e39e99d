package job

import (
	"regexp"

	"github.com/jdziat/simple-crontab/pkg/core"
)

var varRe = regexp.MustCompile(`^([^#\s=][^\s=]*)=(.+)$`)

// Var is an environment assignment line such as MAILTO=ops@example.com.
type Var struct {
	Name  string
	Value string
}

// ParseVar parses a NAME=value line.
func ParseVar(line string) (*Var, error) {
	m := varRe.FindStringSubmatch(line)
	if m == nil {
		return nil, core.NewParseError(core.ErrInvalidLine, "", line)
	}
	return &Var{Name: m[1], Value: m[2]}, nil
}

func (v *Var) String() string {
	return v.Name + "=" + v.Value
}
