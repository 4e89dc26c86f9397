// Package geoid canonicalizes geographic identifiers so that tabular data
// and boundary attributes can be joined on exact string equality.
package geoid

import "strings"

// Normalize returns the canonical string form of a geographic identifier.
//
// Identifiers that round-tripped through a floating-point column pick up a
// spurious fractional suffix ("110010074011.0"); Normalize truncates at the
// first '.' to repair them. Identifiers that are already plain strings pass
// through unchanged.
//
// Normalize never restores leading zeros stripped by a numeric source; such
// identifiers fail to match on the boundary side and show up as a depressed
// match count in the merge diagnostics.
func Normalize(raw string) string {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		return raw[:i]
	}
	return raw
}
