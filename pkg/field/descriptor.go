package field

import (
	"strconv"
	"strings"
)

// Descriptor holds the bounds and symbolic names for one time field.
type Descriptor struct {
	Name  string
	Min   int
	Max   int
	names map[string]int
}

// The five field positions, in crontab order.
var (
	Minute     = &Descriptor{Name: "Minute", Min: 0, Max: 59}
	Hour       = &Descriptor{Name: "Hour", Min: 0, Max: 23}
	DayOfMonth = &Descriptor{Name: "Day of Month", Min: 1, Max: 31}
	Month      = &Descriptor{Name: "Month", Min: 1, Max: 12, names: map[string]int{
		"jan": 1,
		"feb": 2,
		"mar": 3,
		"apr": 4,
		"may": 5,
		"jun": 6,
		"jul": 7,
		"aug": 8,
		"sep": 9,
		"oct": 10,
		"nov": 11,
		"dec": 12,
	}}
	// DayOfWeek accepts both 0 and 7 for Sunday; the name "sun" resolves to 0.
	DayOfWeek = &Descriptor{Name: "Day of Week", Min: 0, Max: 7, names: map[string]int{
		"sun": 0,
		"mon": 1,
		"tue": 2,
		"wed": 3,
		"thu": 4,
		"fri": 5,
		"sat": 6,
	}}
)

// Descriptors lists the field descriptors by position.
var Descriptors = [5]*Descriptor{Minute, Hour, DayOfMonth, Month, DayOfWeek}

// HasNames reports whether the field accepts symbolic names.
func (d *Descriptor) HasNames() bool {
	return len(d.names) > 0
}

// Contains reports whether v lies within the field bounds.
func (d *Descriptor) Contains(v int) bool {
	return v >= d.Min && v <= d.Max
}

// Resolve turns a single token into a value. Symbolic names are matched
// case-insensitively before falling back to an integer. The bool is false
// when the token is neither, or when the value is out of bounds.
func (d *Descriptor) Resolve(token string) (int, bool) {
	if v, ok := d.names[strings.ToLower(token)]; ok {
		return v, true
	}
	v, err := strconv.Atoi(token)
	if err != nil || !d.Contains(v) {
		return 0, false
	}
	return v, true
}
