// Package file provides a file-based implementation of store.KV.
// Values are kept in a single JSON document inside an XDG-compliant data
// directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/getmockd/mockswitch/pkg/store"
)

// Current data format version for migration support
const dataVersion = 1

// DefaultFileName is the name of the data file inside the data directory.
const DefaultFileName = "data.json"

// FileStore implements store.KV on top of a JSON file.
//
// Every Get re-reads the file so edits made by another process are picked up
// on the next read. Set writes synchronously with a temp file and rename.
type FileStore struct {
	dir      string
	name     string
	readOnly bool

	mu     sync.Mutex
	closed bool
}

// storeData is the on-disk document.
type storeData struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries,omitempty"`
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithFileName overrides DefaultFileName.
func WithFileName(name string) Option {
	return func(s *FileStore) {
		if name != "" {
			s.name = name
		}
	}
}

// WithReadOnly rejects writes with store.ErrReadOnly.
func WithReadOnly() Option {
	return func(s *FileStore) { s.readOnly = true }
}

// New creates a FileStore rooted at dir. An empty dir uses
// store.DefaultDataDir. The directory is created on first write.
func New(dir string, opts ...Option) *FileStore {
	if dir == "" {
		dir = store.DefaultDataDir()
	}
	s := &FileStore{dir: dir, name: DefaultFileName}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the data file path.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, s.name)
}

// Get implements store.KV.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, store.ErrClosed
	}

	data, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data.Entries[key]
	return v, ok, nil
}

// Set implements store.KV.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return store.ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	if s.readOnly {
		return store.ErrReadOnly
	}

	data, err := s.load()
	if err != nil {
		return err
	}
	if data.Entries == nil {
		data.Entries = make(map[string]string)
	}
	data.Entries[key] = value
	return s.save(data)
}

// Close implements store.KV. Safe to call multiple times.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// load reads the data file. A missing file is an empty document.
func (s *FileStore) load() (*storeData, error) {
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &storeData{Version: dataVersion}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.Path(), err)
	}
	if len(raw) == 0 {
		return &storeData{Version: dataVersion}, nil
	}

	var stored storeData
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path(), err)
	}
	return &stored, nil
}

// save performs an atomic write: temp file, then rename.
func (s *FileStore) save(data *storeData) error {
	// Ensure directory exists with secure permissions (0700)
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	data.Version = dataVersion
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	dataFile := s.Path()
	tmpFile := dataFile + ".tmp"

	if err := os.WriteFile(tmpFile, raw, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, dataFile); err != nil {
		_ = os.Remove(tmpFile) // Clean up temp file on failure
		return err
	}
	return nil
}

var _ store.KV = (*FileStore)(nil)
