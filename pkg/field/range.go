package field

import (
	"strconv"
	"strings"

	"github.com/jdziat/simple-crontab/pkg/core"
)

// Range is a from-to[/step] term. A bare "*" is stored as the full
// descriptor range with step 1.
type Range struct {
	desc *Descriptor
	from int
	to   int
	step int
}

// ParseRange parses one ranged term ("*", "*/5", "9-17", "jan-mar/2") for d.
func ParseRange(d *Descriptor, term string) (*Range, error) {
	r := &Range{desc: d, step: 1}

	base, step, stepped := strings.Cut(term, "/")
	if stepped {
		n, err := strconv.Atoi(step)
		if err != nil || n < 1 {
			return nil, core.NewParseError(core.ErrInvalidRangeValue, d.Name, step)
		}
		r.step = n
	}

	if base == "*" {
		r.from, r.to = d.Min, d.Max
		return r, nil
	}

	lo, hi, ranged := strings.Cut(base, "-")
	if !ranged {
		return nil, core.NewParseError(core.ErrUnknownRangeValue, d.Name, base)
	}

	var ok bool
	if r.from, ok = d.Resolve(lo); !ok {
		return nil, core.NewParseError(core.ErrInvalidRangeValue, d.Name, lo)
	}
	if r.to, ok = d.Resolve(hi); !ok {
		return nil, core.NewParseError(core.ErrInvalidRangeValue, d.Name, hi)
	}
	if r.from > r.to {
		return nil, core.NewParseError(core.ErrInvalidRangeValue, d.Name, base)
	}
	return r, nil
}

// From returns the lower bound.
func (r *Range) From() int { return r.from }

// To returns the upper bound.
func (r *Range) To() int { return r.to }

// Step returns the step, 1 when unset.
func (r *Range) Step() int { return r.step }

// Every sets the step of the range.
func (r *Range) Every(n int) error {
	if n < 1 {
		return core.NewParseError(core.ErrInvalidRangeValue, r.desc.Name, strconv.Itoa(n))
	}
	r.step = n
	return nil
}

// String renders the term: "*" for the full range, "from-to" otherwise,
// followed by "/step" when the step is not 1.
func (r *Range) String() string {
	value := "*"
	if r.from > r.desc.Min || r.to < r.desc.Max {
		value = strconv.Itoa(r.from) + "-" + strconv.Itoa(r.to)
	}
	if r.step != 1 {
		value += "/" + strconv.Itoa(r.step)
	}
	return value
}

func (*Range) partMarker() {}
