// Package cache stores rendered artifacts keyed by a hash of their inputs.
//
// Rendering is deterministic: the same exam, setup and page options always
// produce the same bytes. The pipeline therefore keys each artifact by a
// SHA-256 of its normalized input and skips composition entirely on a hit.
//
// Three backends are provided:
//
//   - [NullCache]: never stores anything (--no-cache, tests)
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//
// [MemoryCache] is an in-process map used by the server when no Redis URL is
// configured.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. A miss is reported with
// hit == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	// ArtifactKey returns the key of one rendered output format.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
	// PreviewKey returns the key of a composition preview generated on
	// date. The preview filename falls back to that date.
	PreviewKey(inputHash, kind, date string) string
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Kind     string  `json:"kind"`
	Format   string  `json:"format"`
	PageSize string  `json:"page_size"`
	Margin   float64 `json:"margin"`
	Source   string  `json:"source"`
	Date     string  `json:"date"`
}

// DefaultKeyer produces keys of the form "<type>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// PreviewKey implements [Keyer].
func (DefaultKeyer) PreviewKey(inputHash, kind, date string) string {
	return hashKey("preview", inputHash, kind, date)
}
