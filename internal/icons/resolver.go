// Package icons prepares and resolves the raster icons drawn on diagrams.
//
// Setup downloads an icon pack once and writes a flat index.json mapping icon
// keys to PNG files. A Resolver loads that index and hands out decoded,
// resized images. A key that cannot be resolved is never an error: callers
// draw a fallback glyph instead.
package icons

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// IndexFile is the name of the key to path table inside a cache directory.
const IndexFile = "index.json"

// Index maps icon keys to raster file paths. An empty path marks a key that
// could not be prepared and is written as null.
type Index map[string]string

// MarshalJSON writes unresolved keys as null.
func (idx Index) MarshalJSON() ([]byte, error) {
	out := make(map[string]*string, len(idx))
	for k, v := range idx {
		if v == "" {
			out[k] = nil
			continue
		}
		v := v
		out[k] = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts null entries.
func (idx *Index) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*idx = make(Index, len(raw))
	for k, v := range raw {
		if v != nil {
			(*idx)[k] = *v
		} else {
			(*idx)[k] = ""
		}
	}
	return nil
}

// Available counts the keys that have a path.
func (idx Index) Available() int {
	n := 0
	for _, v := range idx {
		if v != "" {
			n++
		}
	}
	return n
}

// Keys returns the index keys sorted.
func (idx Index) Keys() []string {
	keys := make([]string, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadIndex reads an index file. A missing file yields an empty index.
// Relative paths are resolved against the directory holding the index.
func LoadIndex(path string) (Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Index{}, nil
		}
		return nil, fmt.Errorf("failed to read icon index: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to parse icon index %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for k, v := range idx {
		if v != "" && !filepath.IsAbs(v) {
			idx[k] = filepath.Join(base, v)
		}
	}
	return idx, nil
}

// WriteIndex writes idx as indented JSON.
func WriteIndex(path string, idx Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode icon index: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write icon index: %w", err)
	}
	return nil
}

type cacheKey struct {
	key  string
	size int
}

// Resolver turns icon keys into images. It is safe for concurrent use. A nil
// *Resolver resolves nothing.
type Resolver struct {
	index Index

	mu    sync.Mutex
	cache map[cacheKey]image.Image
}

// NewResolver returns a resolver over idx.
func NewResolver(idx Index) *Resolver {
	cp := make(Index, len(idx))
	for k, v := range idx {
		cp[k] = v
	}
	return &Resolver{index: cp, cache: make(map[cacheKey]image.Image)}
}

// LoadResolver builds a resolver from dir/index.json. A missing index gives an
// empty resolver. A malformed index gives an empty resolver and the error, so
// callers can report it and keep rendering with fallback glyphs.
func LoadResolver(dir string) (*Resolver, error) {
	idx, err := LoadIndex(filepath.Join(dir, IndexFile))
	if err != nil {
		return NewResolver(nil), err
	}
	return NewResolver(idx), nil
}

// Len reports the number of keys with a path.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return r.index.Available()
}

// Path returns the file for key if the index names one and it exists.
func (r *Resolver) Path(key string) (string, bool) {
	if r == nil || key == "" {
		return "", false
	}
	p := r.index[key]
	if p == "" {
		return "", false
	}
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

// Image returns the icon for key scaled to size x size. The second result is
// false when the key is unknown or its file is missing or undecodable.
func (r *Resolver) Image(key string, size int) (image.Image, bool) {
	if r == nil || key == "" || size <= 0 {
		return nil, false
	}

	ck := cacheKey{key, size}
	r.mu.Lock()
	img, seen := r.cache[ck]
	r.mu.Unlock()
	if seen {
		return img, true
	}

	// Misses are not cached so icons prepared after construction still resolve.
	img = r.load(key, size)
	if img == nil {
		return nil, false
	}

	r.mu.Lock()
	r.cache[ck] = img
	r.mu.Unlock()
	return img, true
}

func (r *Resolver) load(key string, size int) image.Image {
	path, ok := r.Path(key)
	if !ok {
		return nil
	}
	img, err := decodeFile(path, size)
	if err != nil {
		return nil
	}
	return Resize(img, size)
}
