package field

import (
	"strconv"
	"strings"

	"github.com/jdziat/simple-crontab/pkg/core"
)

// Part is one comma-separated term of a Field: a Value or a *Range.
type Part interface {
	String() string
	partMarker()
}

// Value is a literal term.
type Value int

func (v Value) String() string { return strconv.Itoa(int(v)) }

func (Value) partMarker() {}

// Field is the ordered list of terms for one time field of a job.
type Field struct {
	desc  *Descriptor
	parts []Part
}

// New returns an empty Field, which renders as "*".
func New(d *Descriptor) *Field {
	return &Field{desc: d}
}

// Parse parses a comma-separated term list. An empty value yields an empty Field.
func Parse(d *Descriptor, value string) (*Field, error) {
	f := New(d)
	if value == "" {
		return f, nil
	}
	for _, token := range strings.Split(value, ",") {
		part, err := parsePart(d, token)
		if err != nil {
			return nil, err
		}
		f.parts = append(f.parts, part)
	}
	return f, nil
}

func parsePart(d *Descriptor, token string) (Part, error) {
	if token == "*" || strings.ContainsAny(token, "/-") {
		return ParseRange(d, token)
	}
	if v, ok := d.Resolve(token); ok {
		return Value(v), nil
	}
	if _, err := strconv.Atoi(token); err == nil {
		return nil, core.NewParseError(core.ErrInvalidRangeValue, d.Name, token)
	}
	return nil, core.NewParseError(core.ErrUnknownFieldPart, d.Name, token)
}

// Descriptor returns the field's descriptor.
func (f *Field) Descriptor() *Descriptor { return f.desc }

// Parts returns a copy of the term list. Ranges are shared with the field.
func (f *Field) Parts() []Part {
	out := make([]Part, len(f.parts))
	copy(out, f.parts)
	return out
}

// Every replaces all terms with "*/n" and returns the new range.
func (f *Field) Every(n int) (*Range, error) {
	r := &Range{desc: f.desc, from: f.desc.Min, to: f.desc.Max, step: 1}
	if err := r.Every(n); err != nil {
		return nil, err
	}
	f.parts = []Part{r}
	return r, nil
}

// On appends literal values. Values are not checked against the bounds.
func (f *Field) On(values ...int) {
	for _, v := range values {
		f.parts = append(f.parts, Value(v))
	}
}

// Between appends the range from-to and returns it so a step can be chained.
func (f *Field) Between(from, to int) (*Range, error) {
	r, err := ParseRange(f.desc, strconv.Itoa(from)+"-"+strconv.Itoa(to))
	if err != nil {
		return nil, err
	}
	f.parts = append(f.parts, r)
	return r, nil
}

// Clear removes every term; the field then renders as "*".
func (f *Field) Clear() {
	f.parts = nil
}

// String renders the terms joined by commas, or "*" when empty.
func (f *Field) String() string {
	if len(f.parts) == 0 {
		return "*"
	}
	tokens := make([]string, len(f.parts))
	for i, p := range f.parts {
		tokens[i] = p.String()
	}
	return strings.Join(tokens, ",")
}
