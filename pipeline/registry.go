package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/marineinsights/oceancast/forecast"
)

// Registry is a bounded cache of fitted models keyed by a content
// fingerprint of the input that produced them. It replaces the ambient
// module-level model cache of earlier designs with an explicit lifecycle:
// a model is created on first use via GetOrFit and dropped with Invalidate
// when its input is retrained.
type Registry struct {
	cache *lru.Cache[string, registryEntry]
	ttl   time.Duration
	mu    sync.Mutex
}

type registryEntry struct {
	model     forecast.Forecaster
	expiresAt time.Time
}

// NewRegistry creates a registry holding at most size fitted models. A ttl
// of zero disables expiration.
func NewRegistry(size int, ttl time.Duration) (*Registry, error) {
	cache, err := lru.New[string, registryEntry](size)
	if err != nil {
		return nil, err
	}
	return &Registry{cache: cache, ttl: ttl}, nil
}

// Fingerprint derives the registry key for an input: a hash of the raw
// file bytes and the options that shape the fitted model.
func Fingerprint(data []byte, parts ...string) string {
	h := sha256.New()
	h.Write(data)
	for _, p := range parts {
		fmt.Fprintf(h, "|%s", p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GetOrFit returns the cached model for key, or fits a new one and caches
// it. The second return value reports whether the model came from the
// cache.
func (r *Registry) GetOrFit(key string, fit func() (forecast.Forecaster, error)) (forecast.Forecaster, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.cache.Get(key); ok {
		if r.ttl == 0 || time.Now().Before(entry.expiresAt) {
			return entry.model, true, nil
		}
		r.cache.Remove(key)
	}

	model, err := fit()
	if err != nil {
		return nil, false, err
	}

	expiresAt := time.Time{}
	if r.ttl > 0 {
		expiresAt = time.Now().Add(r.ttl)
	}
	r.cache.Add(key, registryEntry{model: model, expiresAt: expiresAt})
	return model, false, nil
}

// Invalidate drops the cached model for key, forcing a refit on next use.
func (r *Registry) Invalidate(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Remove(key)
}

// Len returns the number of cached models.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Len()
}
