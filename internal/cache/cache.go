// Package cache keeps loaded datasets between report requests. Entries are
// keyed by the content hash of the source file and the dataset kind, so a
// changed file is never served from a stale entry.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"ossreport/internal/loader"
	"ossreport/pkg/contracts/domain"
)

// Key identifies one cached dataset
type Key struct {
	FileID string
	Kind   domain.DatasetKind
}

// Entry is a loaded dataset. Records must not be modified by readers.
type Entry struct {
	Source   string
	Records  []domain.Record
	Report   loader.LoadReport
	LoadedAt time.Time
}

// DatasetCache is a size-bounded LRU of loaded datasets, safe for
// concurrent use
type DatasetCache struct {
	lru    *lru.Cache[Key, *Entry]
	logger *slog.Logger
}

// New creates a cache holding at most size datasets
func New(size int, logger *slog.Logger) (*DatasetCache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c, err := lru.New[Key, *Entry](size)
	if err != nil {
		return nil, fmt.Errorf("create dataset cache: %w", err)
	}
	return &DatasetCache{lru: c, logger: logger.With(slog.String("component", "cache"))}, nil
}

// Get returns the entry for key
func (c *DatasetCache) Get(key Key) (*Entry, bool) {
	return c.lru.Get(key)
}

// Put stores an entry, evicting the least recently used one when full
func (c *DatasetCache) Put(key Key, e *Entry) {
	if evicted := c.lru.Add(key, e); evicted {
		c.logger.Debug("dataset evicted from cache", slog.Int("size", c.lru.Len()))
	}
}

// Invalidate drops every entry of one source file and returns how many
// were removed
func (c *DatasetCache) Invalidate(fileID string) int {
	n := 0
	for _, k := range c.lru.Keys() {
		if k.FileID == fileID && c.lru.Remove(k) {
			n++
		}
	}
	if n > 0 {
		c.logger.Info("cache entries invalidated", slog.String("file_id", fileID), slog.Int("removed", n))
	}
	return n
}

// Purge empties the cache and returns how many entries it held
func (c *DatasetCache) Purge() int {
	n := c.lru.Len()
	c.lru.Purge()
	c.logger.Info("cache purged", slog.Int("removed", n))
	return n
}

// Len returns the number of cached datasets
func (c *DatasetCache) Len() int {
	return c.lru.Len()
}

// FileID hashes a stream into the identifier used in cache keys
func FileID(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileIDOf hashes the file at path
func FileIDOf(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return FileID(f)
}
