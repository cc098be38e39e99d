package job

// Reboot is the only special schedule that has no field expansion.
const Reboot = "@reboot"

type special struct {
	name  string
	value string // canonical fields, or Reboot
}

// specials in declaration order. When two names share a value the first
// one wins on render: daily over midnight, yearly over annually.
var specials = []special{
	{"reboot", Reboot},
	{"hourly", "0 * * * *"},
	{"daily", "0 0 * * *"},
	{"weekly", "0 0 * * 0"},
	{"monthly", "0 0 1 * *"},
	{"yearly", "0 0 1 1 *"},
	{"annually", "0 0 1 1 *"},
	{"midnight", "0 0 * * *"},
}

var (
	specialByName  = make(map[string]string, len(specials))
	specialByValue = make(map[string]string, len(specials))
)

func init() {
	for _, s := range specials {
		specialByName[s.name] = s.value
		if _, taken := specialByValue[s.value]; !taken {
			specialByValue[s.value] = "@" + s.name
		}
	}
}

// Expand returns the canonical value for a special name given without its "@".
func Expand(name string) (string, bool) {
	v, ok := specialByName[name]
	return v, ok
}

// Specials returns the recognized special names, without "@", in declaration order.
func Specials() []string {
	names := make([]string, len(specials))
	for i, s := range specials {
		names[i] = s.name
	}
	return names
}

// shorthand returns the @name for a rendered schedule, or the schedule itself.
func shorthand(schedule string) string {
	if name, ok := specialByValue[schedule]; ok {
		return name
	}
	return schedule
}
