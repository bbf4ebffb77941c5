// Package cache provides caching for converted models and rendered artifacts.
//
// GLM conversion shells out to gridlabd and rendering runs a layout engine,
// both of which dominate glmplot's runtime on large feeders. The cache
// avoids repeating either when the inputs have not changed.
//
// Three backends implement [Cache]:
//   - [FileCache]: per-user on-disk cache for CLI usage
//   - [RedisCache]: shared cache for batch validation farms
//   - [NullCache]: disabled caching
package cache

import (
	"context"
	"time"
)

// TTLs for the different cached artifacts. Converted models are tied to
// the source file hash so they can live long; rendered artifacts embed the
// render options in their key and do too.
const (
	TTLModel    = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with expiration.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration;
	// a negative TTL means already expired, so the entry is never
	// returned by Get.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render settings that distinguish otherwise
// identical model inputs.
type ArtifactKeyOpts struct {
	Format    string
	Layout    string
	PowerBase float64
	NodeSize  int
	NodeShape string
	Title     string
	Scale     float64
}

// Keyer generates cache keys. Implementations must be deterministic:
// identical inputs yield identical keys across processes.
type Keyer interface {
	// ModelKey keys a converted JSON model by the source file's hash.
	ModelKey(sourceHash string) string

	// ArtifactKey keys a rendered artifact by the model hash and the
	// render options that shaped it.
	ArtifactKey(modelHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// ModelKey generates a key for a converted model.
func (k *DefaultKeyer) ModelKey(sourceHash string) string {
	return hashKey("model", sourceHash)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", modelHash, opts)
}
