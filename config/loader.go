/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	stratumfs "bennypowers.dev/stratum/fs"
	"bennypowers.dev/stratum/schema"
	"bennypowers.dev/stratum/specifier"
	"bennypowers.dev/stratum/token"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "design-tokens"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/design-tokens.{yaml,yml,json} from rootDir.
// The file is validated against the embedded config schema before decoding.
// Returns nil if no config found (not an error).
func Load(filesystem stratumfs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg, err := Parse(data, ext)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", configPath, err)
		}
		return cfg, nil
	}

	return nil, nil
}

// Parse validates and decodes config content. ext selects the decoder:
// ".json" content may carry comments.
func Parse(data []byte, ext string) (*Config, error) {
	if err := schema.Check(schema.Config, data); err != nil {
		return nil, err
	}

	cfg := &Config{}
	switch ext {
	case ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	if _, err := cfg.ConfiguredLayers(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault returns config or defaults if not found.
// A config that exists but is invalid is still an error.
func LoadOrDefault(filesystem stratumfs.FileSystem, rootDir string) (*Config, error) {
	cfg, err := Load(filesystem, rootDir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return Default(), nil
	}
	return cfg, nil
}

// Source is one resolved token source of a layer.
type Source struct {
	Layer token.Layer
	// Mode pins the source's tokens to one mode; empty lets the parser split
	// the source by its mode keys.
	Mode token.Mode
	File *specifier.ResolvedFile
}

// ResolveFiles expands glob patterns and resolves specifiers for every
// configured layer, in layer order.
func (c *Config) ResolveFiles(resolver specifier.Resolver, filesystem stratumfs.FileSystem, rootDir string) ([]Source, error) {
	layers, err := c.ConfiguredLayers()
	if err != nil {
		return nil, err
	}

	var result []Source
	for _, layer := range layers {
		for _, spec := range c.Layers[layer.Slug()].Files {
			expanded, err := expandFilePath(filesystem, rootDir, spec.Path)
			if err != nil {
				return nil, err
			}

			for _, path := range expanded {
				resolved, err := resolver.Resolve(path)
				if err != nil {
					return nil, err
				}
				src := Source{Layer: layer, File: resolved}
				if spec.Mode != "" {
					src.Mode = token.ParseMode(spec.Mode)
				}
				result = append(result, src)
			}
		}
	}

	return result, nil
}

// expandFilePath expands a single file path which may contain globs.
// npm: and https paths are passed through unchanged.
func expandFilePath(filesystem stratumfs.FileSystem, rootDir, pattern string) ([]string, error) {
	if specifier.IsRemote(pattern) {
		return []string{pattern}, nil
	}

	// Make pattern absolute if relative
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}

	if !containsGlob(pattern) {
		// Not a glob, return the path directly (errors handled when file is read)
		return []string{pattern}, nil
	}

	return expandGlob(filesystem, pattern)
}

// containsGlob returns true if the pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob expands a glob pattern against the filesystem. Matches are
// sorted so that the order of a layer's sources is stable.
func expandGlob(filesystem stratumfs.FileSystem, pattern string) ([]string, error) {
	// Find the base directory (non-glob prefix)
	baseDir := pattern
	for containsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}
	if !filesystem.Exists(baseDir) {
		return nil, nil
	}

	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = strings.TrimPrefix(relPattern, string(filepath.Separator))

	var matches []string

	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip directories we can't read
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		relPath := strings.TrimPrefix(path, baseDir)
		relPath = strings.TrimPrefix(relPath, string(filepath.Separator))

		if matched, _ := doublestar.Match(relPattern, relPath); matched {
			matches = append(matches, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}
