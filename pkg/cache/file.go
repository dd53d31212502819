package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps each entry in its own JSON file below a directory.
// Keys are hashed and fanned out over 256 subdirectories.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

type fileEntry struct {
	Data    []byte    `json:"data"`
	Expires time.Time `json:"expires,omitzero"`
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.Expires.IsZero() && now.After(e.Expires)
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get reads key. Corrupt and expired entries are removed and reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	p := c.path(key)
	raw, err := os.ReadFile(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil || e.expired(c.now()) {
		_ = os.Remove(p)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set writes key through a temporary file so readers never see a partial entry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Data: data}
	if ttl > 0 {
		e.Expires = c.now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	p := c.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	n := 0
	err := filepath.WalkDir(c.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".json" {
			return nil
		}
		if err := os.Remove(p); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
