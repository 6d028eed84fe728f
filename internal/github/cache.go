package github

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/hubdeck/hubdeck/internal/errors"
	"github.com/hubdeck/hubdeck/internal/logger"
)

// CacheVersion is the only accepted version tag. A snapshot written by any
// other version behaves exactly like a missing file on load.
const CacheVersion = 1

// cacheData is the persisted subset of State plus the version gate.
// Status is deliberately absent: a persisted Fetching or Error status is
// transient noise, so load always starts at Idle.
type cacheData struct {
	Profile      *Profile   `json:"profile"`
	Repos        []Repo     `json:"repos"`
	Events       []Event    `json:"events"`
	Stats        Stats      `json:"stats"`
	RateLimit    RateLimit  `json:"rate_limit"`
	LastUpdated  *time.Time `json:"last_updated"`
	CacheVersion int        `json:"cache_version"`
}

// Cache persists the GitHub state as a single JSON document. It has no
// locking: the Poller is its only writer and never overlaps writes with
// itself.
type Cache struct {
	path string
}

// NewCache creates a cache backed by the given file path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Load reads the cached snapshot. A missing file, unparsable content, or a
// version tag other than CacheVersion all return nil; each is logged and
// none is an error. The loaded state's status is always Idle.
func (c *Cache) Load() *State {
	content, err := os.ReadFile(c.path)
	if err != nil {
		logger.Debug().Str("path", c.path).Msg("no cache file, starting fresh")
		return nil
	}

	var data cacheData
	if err := json.Unmarshal(content, &data); err != nil {
		logger.Warn().Err(err).Str("path", c.path).Msg("cache unreadable, starting fresh")
		return nil
	}

	if data.CacheVersion != CacheVersion {
		logger.Warn().
			Int("version", data.CacheVersion).
			Int("supported", CacheVersion).
			Msg("cache version mismatch, starting fresh")
		return nil
	}

	logger.Info().Int("repos", len(data.Repos)).Msg("loaded GitHub state from cache")

	return &State{
		Profile:     data.Profile,
		Repos:       data.Repos,
		Events:      data.Events,
		Stats:       data.Stats,
		RateLimit:   data.RateLimit,
		LastUpdated: data.LastUpdated,
		Status:      StatusIdle,
	}
}

// Save overwrites the cache file with the given state in a single write.
func (c *Cache) Save(state State) error {
	data := cacheData{
		Profile:      state.Profile,
		Repos:        state.Repos,
		Events:       state.Events,
		Stats:        state.Stats,
		RateLimit:    state.RateLimit,
		LastUpdated:  state.LastUpdated,
		CacheVersion: CacheVersion,
	}

	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrCache, "Failed to encode cache", "")
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrCache,
				"Failed to create cache directory", "Check permissions on "+dir)
		}
	}

	if err := os.WriteFile(c.path, content, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrCache,
			"Failed to write cache", "Check permissions on "+c.path)
	}

	logger.Debug().Str("path", c.path).Msg("saved cache")
	return nil
}

// Exists reports whether the cache file is present.
func (c *Cache) Exists() bool {
	_, err := os.Stat(c.path)
	return err == nil
}

// Clear deletes the cache file if present.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return errors.WrapWithCode(err, errors.ErrCache,
			"Failed to delete cache", "Check permissions on "+c.path)
	}
	return nil
}

// Path returns the backing file location.
func (c *Cache) Path() string {
	return c.path
}
