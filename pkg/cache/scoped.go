package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis instance without reading each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer falls back to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// StatsKey generates a prefixed key for statistics caching.
func (k *ScopedKeyer) StatsKey(region string, opts StatsKeyOpts) string {
	return k.prefix + k.inner.StatsKey(region, opts)
}
