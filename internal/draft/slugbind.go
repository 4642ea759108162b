package draft

import "shopctl/internal/slug"

// SlugBinding implements the name->slug auto-derivation rule: while the
// draft is new and the operator has not touched the slug field, editing the
// name regenerates the slug. The first manual slug edit detaches the
// binding for good.
type SlugBinding struct {
	edited bool
}

// Touch marks the slug as manually edited; derivation stops.
func (b *SlugBinding) Touch() { b.edited = true }

// Edited reports whether the operator took over the slug.
func (b *SlugBinding) Edited() bool { return b.edited }

// Derive returns the slug that should accompany the given name, or ok=false
// when the binding must not overwrite the current slug (editing an existing
// record, or a manually edited slug).
func (b *SlugBinding) Derive(isNew bool, name string) (string, bool) {
	if !isNew || b.edited {
		return "", false
	}
	return slug.Make(name), true
}
