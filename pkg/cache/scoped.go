package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several projects or
// users can share one Redis instance without seeing each other's entries.
//
// Example usage:
//
//	// Keys for one project on a shared cache
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "talks:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for page caching.
func (k *ScopedKeyer) ArtifactKey(deckHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(deckHash, opts)
}

// OutlineKey generates a prefixed key for outline caching.
func (k *ScopedKeyer) OutlineKey(deckHash string, opts OutlineKeyOpts) string {
	return k.prefix + k.inner.OutlineKey(deckHash, opts)
}
