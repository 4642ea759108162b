package draft

import "strings"

// Trim trims surrounding whitespace from a required string field.
func Trim(s string) string { return strings.TrimSpace(s) }

// Optional normalizes an optional string field for the request payload:
// trimmed, and nil when empty, so the server stores NULL instead of "".
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// OptionalFrom collapses an already-pointer field the same way.
func OptionalFrom(p *string) *string {
	if p == nil {
		return nil
	}
	return Optional(*p)
}
