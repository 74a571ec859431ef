// Package idgen formats the sequential human-readable identifiers used by
// every resource type: a fixed prefix, zero padding, and the decimal form
// of a monotonically increasing counter, at a fixed total width.
package idgen

import (
	"strconv"
	"strings"
)

// Resource id prefixes and widths.
const (
	UserPrefix    = "U"
	VisitorPrefix = "V"
	SitePrefix    = "S"
	VisitPrefix   = "VIS"

	ShortIDSize = 5 // users, visitors, sites
	VisitIDSize = 8 // visits
)

// Generate returns prefix + zero padding + decimal(value) so that the
// result is exactly size characters long. If prefix and digits already
// fill or exceed size, no padding is inserted and the result may be
// longer than size; Generate never truncates. It is a pure function: the
// caller owns the atomic counter increment that produces value.
//
// Generate("S", 1, 5) == "S0001"; Generate("VIS", 7, 8) == "VIS00007".
func Generate(prefix string, value int64, size int) string {
	digits := strconv.FormatInt(value, 10)

	var b strings.Builder
	b.Grow(size)
	b.WriteString(prefix)
	for pad := size - len(prefix) - len(digits); pad > 0; pad-- {
		b.WriteByte('0')
	}
	b.WriteString(digits)
	return b.String()
}
