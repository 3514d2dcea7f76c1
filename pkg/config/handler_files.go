// Handler files: groups loaded from file globs.

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// GroupFileContent is the content of a handler file: a single group or a
// list of groups.
type GroupFileContent struct {
	GroupConfig `yaml:",inline"`

	// Groups is populated when the file holds a list.
	Groups []GroupConfig `yaml:"-"`
}

// UnmarshalYAML accepts both a single group and a list of groups.
func (g *GroupFileContent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var groups []GroupConfig
		if err := node.Decode(&groups); err != nil {
			return err
		}
		g.Groups = groups
		return nil
	}
	return node.Decode(&g.GroupConfig)
}

// List returns the groups in the file.
func (g *GroupFileContent) List() []GroupConfig {
	if g.Groups != nil {
		return g.Groups
	}
	return []GroupConfig{g.GroupConfig}
}

// loadHandlerFiles expands each pattern relative to baseDir and loads every
// match in sorted order. A pattern without matches is not an error.
func loadHandlerFiles(patterns []string, baseDir string) ([]GroupConfig, error) {
	var result []GroupConfig
	for i, pattern := range patterns {
		matches, err := expandGlob(ResolvePath(baseDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("handlerFiles[%d] (%s): expanding glob pattern: %w", i, pattern, err)
		}
		sort.Strings(matches)

		for _, match := range matches {
			relPath, err := filepath.Rel(baseDir, match)
			if err != nil {
				relPath = match
			}
			groups, err := loadGroupFile(match)
			if err != nil {
				return nil, fmt.Errorf("handlerFiles[%d]: loading %s: %w", i, relPath, err)
			}
			result = append(result, groups...)
		}
	}
	return result, nil
}

// loadGroupFile loads the groups in one handler file. JSON files are parsed
// by the YAML decoder.
func loadGroupFile(path string) ([]GroupConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}

	expanded := []byte(ExpandEnvVars(string(data)))
	if len(bytes.TrimSpace(expanded)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	var content GroupFileContent
	dec := yaml.NewDecoder(bytes.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	groups := content.List()
	for _, g := range groups {
		if g.Name == "" {
			return nil, fmt.Errorf("invalid handler file: group without a name: %s", path)
		}
	}
	return groups, nil
}

// expandGlob expands a glob pattern to a list of matching file paths.
// Uses doublestar for ** support, falls back to filepath.Glob for simple patterns.
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	}
	return filepath.Glob(pattern)
}

// mergeGroups appends the groups loaded from handler files to base. A file
// group whose name is already known extends that group, so one group may be
// split across files.
func mergeGroups(base, extra []GroupConfig) []GroupConfig {
	out := append([]GroupConfig(nil), base...)
	index := make(map[string]int, len(out)+len(extra))
	for i := len(out) - 1; i >= 0; i-- {
		index[out[i].Name] = i
	}
	for _, g := range extra {
		if i, ok := index[g.Name]; ok {
			out[i].Handlers = append(append([]HandlerConfig(nil), out[i].Handlers...), g.Handlers...)
			if out[i].Description == "" {
				out[i].Description = g.Description
			}
			continue
		}
		index[g.Name] = len(out)
		out = append(out, g)
	}
	return out
}
