package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several projects
// can share one Redis database without seeing each other's entries:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "github.com/acme/models:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// UnitKey implements Keyer.
func (k *ScopedKeyer) UnitKey(sourceHash string, opts UnitKeyOpts) string {
	return k.prefix + k.inner.UnitKey(sourceHash, opts)
}

// GraphKey implements Keyer.
func (k *ScopedKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(sourceHash, opts)
}

var _ Keyer = (*ScopedKeyer)(nil)
