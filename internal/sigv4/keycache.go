package sigv4

import (
	"sync"
	"time"
)

// KeyCache memoizes derived signing keys per region for the current scope
// date. Derivation is four HMAC invocations, so the cache mostly matters for
// hardware-backed secret HMACs where the first chain link is a device round
// trip. Entries are valid only for the date they were derived on; the whole
// cache is dropped when the scope date rolls over.
type KeyCache struct {
	mu   sync.Mutex
	date string
	keys map[string][]byte
}

// NewKeyCache returns an empty cache. The zero value is not usable.
func NewKeyCache() *KeyCache {
	return &KeyCache{keys: make(map[string][]byte)}
}

// Get returns the signing key for (region, date of t), deriving and caching
// it on miss.
func (c *KeyCache) Get(secretHmac SecretHmac, region string, t time.Time) []byte {
	date := formatShortTime(t)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.date != date {
		c.date = date
		c.keys = make(map[string][]byte)
	}
	if key, ok := c.keys[region]; ok {
		return key
	}

	key := DeriveKey(secretHmac, region, t)
	c.keys[region] = key
	return key
}
