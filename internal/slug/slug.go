// Package slug derives URL slugs from human-entered names.
// Derivation must be pure and idempotent: a value that is already a slug
// passes through unchanged, so the editor can feed either a fresh name or a
// previously derived slug without drift.
package slug

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Make converts s to a slug: transliterate to ASCII, lowercase, collapse any
// run of characters outside [a-z0-9] into a single hyphen, and strip leading
// and trailing hyphens. The result always matches ^[a-z0-9-]*$.
func Make(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return s == Make(s)
}
