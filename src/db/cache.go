package db

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache groups are tracked so every entry of a kind can be dropped at once,
// e.g. all category listings of one user after a write.
const (
	CategoryCacheGroup = "categories"
	ProfileCacheGroup  = "profile"
)

type Cache struct {
	store *ristretto.Cache
	ttl   time.Duration

	mu   sync.RWMutex
	keys map[string]map[string]struct{}
}

func NewCache(ttl time.Duration) (*Cache, error) {
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return &Cache{store: store, ttl: ttl, keys: make(map[string]map[string]struct{})}, nil
}

// Key builds a cache key namespaced by group and user.
func Key(group string, parts ...interface{}) string {
	key := group
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

func (c *Cache) Get(key string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	return c.store.Get(key)
}

func (c *Cache) Set(group, key string, value interface{}) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	if c.keys[group] == nil {
		c.keys[group] = make(map[string]struct{})
	}
	c.keys[group][key] = struct{}{}
	c.mu.Unlock()
	if !c.store.SetWithTTL(key, value, 1, c.ttl) {
		log.Printf("INFO: Cache rejected key %s", key)
	}
	c.store.Wait()
}

func (c *Cache) Del(group, key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.keys[group], key)
	c.mu.Unlock()
	c.store.Del(key)
}

// ClearGroup drops every tracked entry of a group.
func (c *Cache) ClearGroup(group string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	for key := range c.keys[group] {
		c.store.Del(key)
	}
	c.keys[group] = make(map[string]struct{})
	c.mu.Unlock()
}

func (c *Cache) Close() {
	if c != nil {
		c.store.Close()
	}
}
