package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// hashKey derives a cache key of the form prefix:hex(sha256) from the
// given components. Components are written into the hash in order with a
// separator, so ("a", "bc") and ("ab", "c") produce different keys.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%v\x00", p)
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 digest of data. The full 64-character
// digest is kept; truncating would trade collision safety for nothing
// the filesystem cares about.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
