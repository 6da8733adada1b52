package cache

// ScopedKeyer wraps a Keyer with a prefix, giving callers separate cache
// namespaces over one shared backend. Batch jobs use this to keep
// per-project entries apart when several projects live on the same
// CATMAID server.
//
// Example usage:
//
//	projectKeyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "project:12:")
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

// SkeletonKey generates a prefixed key for a skeleton payload.
func (k *ScopedKeyer) SkeletonKey(server string, skeletonID int64) string {
	return k.prefix + k.inner.SkeletonKey(server, skeletonID)
}

// ConnectorKey generates a prefixed key for a connector batch.
func (k *ScopedKeyer) ConnectorKey(server string, connectorIDs []int64) string {
	return k.prefix + k.inner.ConnectorKey(server, connectorIDs)
}

// VolumeKey generates a prefixed key for a volume payload.
func (k *ScopedKeyer) VolumeKey(server string, nameOrID string) string {
	return k.prefix + k.inner.VolumeKey(server, nameOrID)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
