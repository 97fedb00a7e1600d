package inventory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Cache is a file-based cache of a fully built inventory, invalidated by
// comparing its own mtime against a set of reference paths (typically the
// inventory source tree and the config file) rather than the original's
// fixed "compare against this script's mtime" check, which has no Go
// equivalent once the tool is compiled to a single static binary.
type Cache struct {
	path string
}

func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// IsValid reports whether the cache file exists and is at least as new as
// every path in refPaths. A missing reference path is ignored rather than
// invalidating the cache, since a freshly created inventory directory may
// not yet contain every optional file.
func (c *Cache) IsValid(refPaths ...string) bool {
	cacheInfo, err := os.Stat(c.path)
	if err != nil {
		return false
	}
	for _, ref := range refPaths {
		refInfo, err := os.Stat(ref)
		if err != nil {
			continue
		}
		if refInfo.ModTime().After(cacheInfo.ModTime()) {
			return false
		}
	}
	return true
}

// Load reads and JSON-decodes the cached inventory.
func (c *Cache) Load() (map[string]any, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, errors.Wrapf(err, "cache: reading %s", c.path)
	}
	var inv map[string]any
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, errors.Wrapf(err, "cache: decoding %s", c.path)
	}
	return inv, nil
}

// Save JSON-encodes inventory and writes it atomically: the new content
// lands in a temp file in the same directory, then is renamed over the
// cache path, so a process killed mid-write never leaves a corrupt cache.
func (c *Cache) Save(inventory map[string]any) error {
	data, err := json.Marshal(inventory)
	if err != nil {
		return errors.Wrap(err, "cache: encoding inventory")
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".inventory-cache-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "cache: creating temp file in %s", dir)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "cache: writing %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "cache: closing %s", tmpPath)
	}

	modTime := time.Now()
	if err := os.Chtimes(tmpPath, modTime, modTime); err != nil {
		return errors.Wrapf(err, "cache: touching %s", tmpPath)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		return errors.Wrapf(err, "cache: renaming %s to %s", tmpPath, c.path)
	}
	return nil
}
