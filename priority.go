package sitemaptree

import "github.com/shopspring/decimal"

var (
	priorityMin = decimal.NewFromInt(0)
	priorityMax = decimal.NewFromInt(1)
)

// parsePriority parses a raw <priority> string as a decimal and clamps it to
// DefaultPriority with ok=false if it falls outside [0, 1] or fails to
// parse. The original Python implementation's range check was a malformed
// boolean-membership test (see SPEC_FULL.md, DESIGN.md); this is the
// spec-mandated correct 0 <= p <= 1 semantics.
func parsePriority(raw string) (priority decimal.Decimal, ok bool) {
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return DefaultPriority, false
	}
	if parsed.LessThan(priorityMin) || parsed.GreaterThan(priorityMax) {
		return DefaultPriority, false
	}
	return parsed, true
}
