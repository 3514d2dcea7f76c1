package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrNoConfig         = errors.New("no configuration file found")
)

// EnvConfig names the environment variable that points at the configuration
// file when no path is given.
const EnvConfig = "MOCKSWITCH_CONFIG"

// DiscoveryOrder lists the file names searched in the working directory.
var DiscoveryOrder = []string{
	"mockswitch.yaml",
	"mockswitch.yml",
	"mockswitch.json",
	".mockswitch.yaml",
}

// Load reads, expands and validates the configuration at path, loads its
// handler files and applies defaults. Relative handler file patterns and
// storage.dir resolve against the directory of path. An empty path is
// discovered with Discover.
func Load(path string) (*Config, error) {
	if path == "" {
		discovered, err := Discover()
		if err != nil {
			return nil, err
		}
		path = discovered
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path

	if len(cfg.HandlerFiles) > 0 {
		groups, err := loadHandlerFiles(cfg.HandlerFiles, filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		cfg.Groups = mergeGroups(cfg.Groups, groups)
	}

	if cfg.Storage.Dir != "" {
		cfg.Storage.Dir = ResolvePath(filepath.Dir(path), cfg.Storage.Dir)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data as YAML, or as JSON when ext is ".json". Environment
// variables are expanded first. Unknown keys are rejected. Defaults are not
// applied and handler files are not loaded.
func Parse(data []byte, ext string) (*Config, error) {
	expanded := []byte(ExpandEnvVars(string(data)))
	if len(bytes.TrimSpace(expanded)) == 0 {
		return nil, ErrEmptyFile
	}

	var cfg Config
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(expanded))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(expanded))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	}
	return &cfg, nil
}

// Discover finds the configuration file via MOCKSWITCH_CONFIG or the
// discovery order in the current directory.
func Discover() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s points to non-existent file: %s", ErrFileNotFound, EnvConfig, envPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	for _, name := range DiscoveryOrder {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s; pass --config or set %s", ErrNoConfig, cwd, EnvConfig)
}

// readFile reads path, mapping common failures to package errors.
func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return data, nil
}
