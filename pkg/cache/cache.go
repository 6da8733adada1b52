// Package cache provides response caching for CATMAID server data.
//
// Skeleton, connector and volume payloads are immutable enough in
// practice that re-fetching them per invocation is wasted round trips;
// the client layer stores raw response bytes behind the Cache interface
// and the CLI picks a backend (file, redis, or none) from configuration.
package cache

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Cache stores raw response payloads keyed by strings from a Keyer.
type Cache interface {
	// Get returns the payload for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the payload under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the payload for key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for the payload kinds the client fetches.
// Keys embed the server URL so one cache can serve several CATMAID
// instances without collisions.
type Keyer interface {
	// SkeletonKey keys a full skeleton payload.
	SkeletonKey(server string, skeletonID int64) string

	// ConnectorKey keys a connector detail batch. The same set of
	// connector IDs in a different order yields the same key.
	ConnectorKey(server string, connectorIDs []int64) string

	// VolumeKey keys a volume mesh payload.
	VolumeKey(server string, nameOrID string) string
}

// DefaultKeyer hashes the key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SkeletonKey generates a key for a skeleton payload.
func (k *DefaultKeyer) SkeletonKey(server string, skeletonID int64) string {
	return hashKey("skeleton", server, skeletonID)
}

// ConnectorKey generates an order-independent key for a connector batch.
func (k *DefaultKeyer) ConnectorKey(server string, connectorIDs []int64) string {
	sorted := append([]int64(nil), connectorIDs...)
	slices.Sort(sorted)
	return hashKey("connectors", server, sorted)
}

// VolumeKey generates a key for a volume payload.
func (k *DefaultKeyer) VolumeKey(server string, nameOrID string) string {
	return hashKey("volume", server, nameOrID)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// Backend identifies a cache backend in configuration.
type Backend string

// Supported backends.
const (
	BackendNone  Backend = "none"
	BackendFile  Backend = "file"
	BackendRedis Backend = "redis"
)

// Open constructs the backend named by kind. The target is the cache
// directory for the file backend and the server address for redis.
func Open(kind Backend, target string) (Cache, error) {
	switch kind {
	case BackendNone, "":
		return NewNullCache(), nil
	case BackendFile:
		return NewFileCache(target)
	case BackendRedis:
		return NewRedisCache(target)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", kind)
	}
}
