// Package cache stores rendered artifacts so repeated renders of the same
// values skip the build and layout work.
//
// Four backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [LRUCache]: bounded in-memory cache, the server default
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: disables caching
//
// Keys are derived by a [Keyer]. [DefaultKeyer] hashes the tree content and
// the render options; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached. Artifacts are a
// pure function of their key, so the TTL only bounds disk and memory use.
const TTLArtifact = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored data and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	CellWidth   int     `json:"cell_width,omitempty"`
	Link        string  `json:"link,omitempty"`
	Placeholder string  `json:"placeholder,omitempty"`
	ShowNull    bool    `json:"show_null,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of an artifact rendered from the tree
	// identified by treeHash.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

var _ Keyer = DefaultKeyer{}
