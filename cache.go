package main

import (
	"encoding/json"
	"log"
	"time"
)

// DefaultCacheTTL is how long a TimedCache entry stays valid unless the
// caller asks for a different window.
const DefaultCacheTTL = 30 * time.Minute

// cacheEnvelope is the stored shape: the value plus its write time in epoch
// milliseconds.
type cacheEnvelope struct {
	Value     json.RawMessage `json:"value"`
	Timestamp int64           `json:"timestamp"`
}

// TimedCache is a key/value cache with per-read TTL checks layered over a
// Storage. Expired entries are removed lazily on the read that finds them;
// there is no background sweeper. Entries that fail to parse are deleted and
// treated as misses. A nil Storage turns every operation into a no-op so the
// cache can be constructed in environments without persistence.
type TimedCache struct {
	storage Storage
	now     func() time.Time
}

func NewTimedCache(storage Storage) *TimedCache {
	return &TimedCache{storage: storage, now: time.Now}
}

// Set writes value under key. Write failures are logged and swallowed so a
// full or unavailable medium never breaks the caller; prior state is left
// untouched.
func (c *TimedCache) Set(key string, value any) {
	if c.storage == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: cannot serialize value for %q: %v", key, err)
		return
	}

	env := cacheEnvelope{Value: raw, Timestamp: c.now().UnixMilli()}
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("cache: cannot serialize entry for %q: %v", key, err)
		return
	}

	if err := c.storage.Put(key, string(data)); err != nil {
		log.Printf("cache: write failed for %q: %v", key, err)
	}
}

// Get reads key into dest and reports whether a live entry was found.
// Absent, malformed, and expired entries are all misses; the latter two are
// deleted on the way out.
func (c *TimedCache) Get(key string, dest any, ttl time.Duration) bool {
	if c.storage == nil {
		return false
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	data, ok := c.storage.Get(key)
	if !ok {
		return false
	}

	var env cacheEnvelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		log.Printf("cache: removing corrupt entry %q: %v", key, err)
		c.Remove(key)
		return false
	}

	age := c.now().UnixMilli() - env.Timestamp
	if age > ttl.Milliseconds() {
		c.Remove(key)
		return false
	}

	if dest != nil {
		if err := json.Unmarshal(env.Value, dest); err != nil {
			log.Printf("cache: removing corrupt entry %q: %v", key, err)
			c.Remove(key)
			return false
		}
	}
	return true
}

// Touch resets an existing entry's timestamp to now without changing the
// value. Absent or unparseable entries are left alone.
func (c *TimedCache) Touch(key string) {
	if c.storage == nil {
		return
	}

	data, ok := c.storage.Get(key)
	if !ok {
		return
	}

	var env cacheEnvelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		return
	}

	env.Timestamp = c.now().UnixMilli()
	updated, err := json.Marshal(env)
	if err != nil {
		return
	}
	if err := c.storage.Put(key, string(updated)); err != nil {
		log.Printf("cache: touch failed for %q: %v", key, err)
	}
}

// Remove deletes key unconditionally.
func (c *TimedCache) Remove(key string) {
	if c.storage == nil {
		return
	}
	if err := c.storage.Delete(key); err != nil {
		log.Printf("cache: delete failed for %q: %v", key, err)
	}
}

// Has reports whether a live entry exists under key.
func (c *TimedCache) Has(key string, ttl time.Duration) bool {
	return c.Get(key, nil, ttl)
}
