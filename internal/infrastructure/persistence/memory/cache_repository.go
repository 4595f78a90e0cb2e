// Package memory provides an in-memory cache repository for development
// and tests
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/platebook/v1/internal/ports/outbound"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// CacheRepository implements the cache repository interface in process
// memory. Expired entries are dropped lazily on access.
type CacheRepository struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() outbound.CacheRepository {
	return &CacheRepository{
		entries: make(map[string]entry),
	}
}

// Get retrieves a value. A missing or expired key yields (nil, nil).
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok || e.expired() {
		return nil, nil
	}
	return e.value, nil
}

// Set stores a value with a TTL; a zero TTL keeps the entry forever
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	r.mu.Lock()
	r.entries[key] = entry{value: value, expiresAt: expiresAt}
	r.mu.Unlock()
	return nil
}

// Delete removes a value
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}

// Exists checks if a key exists and has not expired
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	return ok && !e.expired(), nil
}

// MGet retrieves multiple values; missing keys are omitted from the result
func (r *CacheRepository) MGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range keys {
		if e, ok := r.entries[key]; ok && !e.expired() {
			result[key] = e.value
		}
	}
	return result, nil
}

// MSet stores multiple values with a shared TTL
func (r *CacheRepository) MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, value := range items {
		r.entries[key] = entry{value: value, expiresAt: expiresAt}
	}
	return nil
}

// Increment increments a counter key, creating it at 1 when absent
func (r *CacheRepository) Increment(ctx context.Context, key string) (int64, error) {
	return r.addToCounter(key, 1)
}

// Decrement decrements a counter key, creating it at -1 when absent
func (r *CacheRepository) Decrement(ctx context.Context, key string) (int64, error) {
	return r.addToCounter(key, -1)
}

func (r *CacheRepository) addToCounter(key string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current int64
	if e, ok := r.entries[key]; ok && !e.expired() {
		n, err := strconv.ParseInt(string(e.value), 10, 64)
		if err != nil {
			return 0, err
		}
		current = n
	}

	current += delta
	r.entries[key] = entry{value: []byte(strconv.FormatInt(current, 10))}
	return current, nil
}
