package cache

// ScopedKeyer wraps a Keyer with a prefix so that several users of one
// backend keep separate namespaces.
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "corescene:server:")
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

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}

// PagesKey generates a prefixed page count key.
func (k *ScopedKeyer) PagesKey(docHash string, opts PagesKeyOpts) string {
	return k.prefix + k.inner.PagesKey(docHash, opts)
}
