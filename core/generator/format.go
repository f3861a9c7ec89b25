package generator

import (
	"fmt"
	"regexp"
	"strconv"

	"hostforge/core/allocation"
)

// DefaultPrefix is the literal leading segment of identifiers
const DefaultPrefix = "CNL"

// Codes are the four catalog codes embedded in an identifier
type Codes struct {
	Vendor   string `json:"vendor" yaml:"vendor"`
	Type     string `json:"type" yaml:"type"`
	Sector   string `json:"sector" yaml:"sector"`
	Location string `json:"location" yaml:"location"`
}

// Format renders and parses PREFIX-<vendor><type><sector><location>-<seq>.
type Format struct {
	prefix  string
	pattern *regexp.Regexp
}

// NewFormat builds the format for a prefix
func NewFormat(prefix string) Format {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Format{
		prefix:  prefix,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-([A-Z0-9]{1,2}[A-Z][0-9]{2}[0-9])-([0-9]{3,})$`),
	}
}

// Prefix returns the literal prefix
func (f Format) Prefix() string {
	return f.prefix
}

// Render builds the identifier string
func (f Format) Render(c Codes, number int) string {
	return fmt.Sprintf("%s-%s%s%s%s-%s", f.prefix, c.Vendor, c.Type, c.Sector, c.Location, allocation.PadNumber(number))
}

// Match reports whether s has the identifier shape
func (f Format) Match(s string) bool {
	return f.pattern.MatchString(s)
}

// Split extracts codes and number. The middle segment is cut from the right:
// location is the last character, sector the two before it, type the one
// before that, and whatever remains is the vendor code. Type codes wider than
// one character therefore cannot be recovered.
func (f Format) Split(s string) (Codes, int, bool) {
	m := f.pattern.FindStringSubmatch(s)
	if m == nil {
		return Codes{}, 0, false
	}
	mid := m[1]
	n := len(mid)
	number, err := strconv.Atoi(m[2])
	if err != nil {
		return Codes{}, 0, false
	}
	return Codes{
		Vendor:   mid[:n-4],
		Type:     mid[n-4 : n-3],
		Sector:   mid[n-3 : n-1],
		Location: mid[n-1:],
	}, number, true
}
