package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a minimal durable key-value store backed by a single JSON file on
// disk. Each key holds one raw JSON value. It is the local analog of an
// origin-scoped web storage area: no expiry, no size accounting, no
// versioning. All operations are serialized by an internal mutex, so a
// read-modify-write through this store is atomic within the process.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a store persisting to path. The file and its parent
// directory are created lazily on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Get returns the raw JSON value stored under key, or nil if the key is
// absent. An unreadable or syntactically corrupt store file is returned as
// an error; callers decide whether to surface or swallow it.
func (f *File) Get(key string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return nil, err
	}
	return data[key], nil
}

// Set stores value under key, overwriting any previous value. If the store
// file is corrupt it is discarded and rebuilt around the new value.
func (f *File) Set(key string, value json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		data = map[string]json.RawMessage{}
	}
	data[key] = value
	return f.flush(data)
}

// Delete removes key from the store. Deleting an absent key is a no-op.
func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		data = map[string]json.RawMessage{}
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return f.flush(data)
}

func (f *File) load() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	data := map[string]json.RawMessage{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return data, nil
}

func (f *File) flush(data map[string]json.RawMessage) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	// Write through a temp file so a crash mid-write cannot truncate the
	// store to a half-written document.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
