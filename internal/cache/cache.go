// Package cache provides a read-through TTL cache for search responses.
// Entries expire on their own; the engine never invalidates explicitly
// because the catalog is immutable between imports.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

// ResultCache stores serialized search responses in Badger with a TTL.
type ResultCache struct {
	db  *badger.DB
	ttl time.Duration
}

// New opens a cache at dir. An empty dir means a purely in-memory cache.
func New(dir string, ttl time.Duration) (*ResultCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return &ResultCache{db: db, ttl: ttl}, nil
}

// Key derives a deterministic cache key from the request parameters that
// affect the response. The query must already be normalized so that
// whitespace and case variants share an entry.
func Key(normalizedQuery, category string, limit int, enhanced bool) string {
	h := sha256.New()
	h.Write([]byte(normalizedQuery))
	h.Write([]byte{0})
	h.Write([]byte(category))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(limit)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(enhanced)))
	return "search:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached response for key, or (nil, false) on a miss or any
// read error. Cache failures never fail a request.
func (c *ResultCache) Get(key string) (*models.SearchResponse, bool) {
	var payload []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// Set stores the response under key with the cache TTL. Last write wins.
func (c *ResultCache) Set(key string, resp *models.SearchResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal cached response: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), payload).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// Close closes the underlying store.
func (c *ResultCache) Close() error {
	return c.db.Close()
}
