package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"scrubber/internal/logging"
	"scrubber/internal/tabular"
)

// Fingerprint derives the snapshot identity of registry content.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Cache memoizes built indexes keyed by registry snapshot fingerprint.
// Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Index
	logger  *slog.Logger
}

// NewCache returns an empty index cache.
func NewCache(logger *slog.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*Index),
		logger:  logging.NewComponentLogger(logger, "registry"),
	}
}

// GetOrBuild returns the cached index for fingerprint, building and storing
// it via build on a miss. The bool reports whether a cached index was reused.
func (c *Cache) GetOrBuild(fingerprint string, build func() (*Index, error)) (*Index, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx, ok := c.entries[fingerprint]; ok {
		c.logger.Debug("master index reused", logging.String("fingerprint", shorten(fingerprint)))
		return idx, true, nil
	}
	idx, err := build()
	if err != nil {
		return nil, false, err
	}
	c.entries[fingerprint] = idx
	return idx, false, nil
}

// Invalidate drops the cached index for fingerprint, forcing a rebuild on
// the next GetOrBuild.
func (c *Cache) Invalidate(fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, fingerprint)
}

// Reset drops every cached index.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Index)
}

// Len reports how many snapshots are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// LoadFile reads a registry CSV, fingerprints its raw bytes, and builds the
// index. Failures here are fatal for a session: without the registry no
// resolution is possible.
func LoadFile(path, idColumn string, logger *slog.Logger) (*Index, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("master registry unavailable: %w", err)
	}
	table, warnings, err := tabular.Read(data)
	if err != nil {
		return nil, "", fmt.Errorf("master registry unavailable: parse %s: %w", path, err)
	}
	log := logging.NewComponentLogger(logger, "registry")
	for _, warning := range warnings {
		log.Warn("registry row skipped or repaired",
			logging.Int("row", warning.Row),
			logging.String("detail", warning.Message),
		)
	}
	return Build(table, idColumn, logger), Fingerprint(data), nil
}

func shorten(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
