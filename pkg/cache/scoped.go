package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "bandslicer:api:")
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

// ResultKey generates a prefixed result key.
func (k *ScopedKeyer) ResultKey(meshHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(meshHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(resultKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(resultKey, opts)
}
