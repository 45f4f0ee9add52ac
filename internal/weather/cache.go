package weather

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/chrissnell/solarsim/internal/log"
	"github.com/chrissnell/solarsim/internal/types"
)

// Cache stores parsed weather series on disk keyed by source checksum, so a
// large CSV is parsed and quality-checked only once. The cache is advisory:
// every failure degrades to a fresh parse.
type Cache struct {
	dir string
}

type cacheEntry struct {
	Records  []types.WeatherRecord  `msgpack:"records"`
	Warnings []types.QualityWarning `msgpack:"warnings"`
}

func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key derives the cache key for raw source bytes.
func Key(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}

// LoadFile reads a weather CSV through the cache, parsing and storing it on a
// miss.
func (c *Cache) LoadFile(path string) ([]types.WeatherRecord, []types.QualityWarning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read weather file: %w", err)
	}

	key := Key(raw)
	if records, warnings, ok := c.lookup(key); ok {
		log.Debugf("weather cache hit for %s (%s)", filepath.Base(path), key)
		return records, warnings, nil
	}

	records, warnings, err := Load(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}
	c.store(key, records, warnings)
	return records, warnings, nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, "tmy_"+key+".msgpack")
}

func (c *Cache) lookup(key string) ([]types.WeatherRecord, []types.QualityWarning, bool) {
	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, nil, false
	}

	var entry cacheEntry
	if err := msgpack.Unmarshal(raw, &entry); err != nil {
		log.Warnf("discarding unreadable weather cache entry %s: %v", key, err)
		os.Remove(c.path(key))
		return nil, nil, false
	}
	return entry.Records, entry.Warnings, true
}

func (c *Cache) store(key string, records []types.WeatherRecord, warnings []types.QualityWarning) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		log.Warnf("could not create weather cache directory %s: %v", c.dir, err)
		return
	}

	raw, err := msgpack.Marshal(cacheEntry{Records: records, Warnings: warnings})
	if err != nil {
		log.Warnf("could not encode weather cache entry: %v", err)
		return
	}
	if err := os.WriteFile(c.path(key), raw, 0644); err != nil {
		log.Warnf("could not write weather cache entry %s: %v", key, err)
	}
}
