package cache

// ScopedKeyer wraps a Keyer with a prefix so that several consumers can
// share one backend without colliding, e.g. the CLI and the HTTP server on
// the same Redis instance.
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

// PreviewKey generates a prefixed key for preview caching.
func (k *ScopedKeyer) PreviewKey(inputHash, kind, date string) string {
	return k.prefix + k.inner.PreviewKey(inputHash, kind, date)
}
