// Package store provides the key-value persistence used to keep handler
// toggle state across sessions.
//
// The controller stores one JSON document under a single key, so backends
// only need string Get and Set:
//   - memory: process-local, for tests and throwaway sessions
//   - file:   a JSON file in an XDG-compliant data directory (package file)
//   - redis:  a shared Redis instance (package redisstore)
//
// Directory defaults follow the XDG Base Directory Specification:
//   - Data:  ~/.local/share/mockswitch/
//   - State: ~/.local/state/mockswitch/
package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// Common errors
var (
	ErrClosed   = errors.New("store is closed")
	ErrReadOnly = errors.New("store is read-only")
	ErrEmptyKey = errors.New("empty key")
)

// Backend represents a storage backend type.
type Backend string

const (
	// BackendFile stores values in a JSON file.
	BackendFile Backend = "file"
	// BackendMemory keeps values in memory (no persistence).
	BackendMemory Backend = "memory"
	// BackendRedis stores values in Redis.
	BackendRedis Backend = "redis"
)

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	switch b {
	case BackendFile, BackendMemory, BackendRedis:
		return true
	}
	return false
}

// KV is a string key-value store.
type KV interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value. The write is
	// durable for the backend when Set returns.
	Set(ctx context.Context, key, value string) error

	// Close releases backend resources.
	Close() error
}

const appName = "mockswitch"

// DefaultDataDir returns the default data directory following XDG spec.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName, "data")
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
		return filepath.Join(home, "AppData", "Local", appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultStateDir returns the default state directory following XDG spec.
func DefaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName, "state")
	}
	switch runtime.GOOS {
	case "darwin":
		// macOS has no state dir convention, use the data dir
		return filepath.Join(home, "Library", "Application Support", appName, "state")
	case "windows":
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return filepath.Join(appData, appName, "state")
		}
		return filepath.Join(home, "AppData", "Local", appName, "state")
	}
	return filepath.Join(home, ".local", "state", appName)
}
