// Package cache stores slicing results and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// Keys are produced by a [Keyer]. A result key is derived from the SHA-256 of
// the raw mesh bytes together with every option that changes the result
// (direction and prefix), so the same file sliced the same way always maps to
// the same entry. Artifact keys extend a result key with the export format
// and highlight selection.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey identifies a slicing result of the mesh with content hash meshHash.
	ResultKey(meshHash string, opts ResultKeyOpts) string
	// ArtifactKey identifies an export of the result stored under resultKey.
	ArtifactKey(resultKey string, opts ArtifactKeyOpts) string
}

// ResultKeyOpts holds the options that change a slicing result.
type ResultKeyOpts struct {
	Direction [3]float64
	Prefix    string
}

// ArtifactKeyOpts holds the options that change an exported artifact.
type ArtifactKeyOpts struct {
	Format    string
	Highlight []int
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(meshHash string, opts ResultKeyOpts) string {
	return hashKey("result", meshHash, opts.Direction, opts.Prefix)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(resultKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultKey, opts.Format, opts.Highlight)
}

var _ Keyer = DefaultKeyer{}

// Hash returns the hex SHA-256 of data. Mesh content hashes use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns kind + ":" + the hash of the JSON encoding of parts.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
