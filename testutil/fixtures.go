/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides testing utilities for stratum.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bennypowers.dev/stratum/internal/mapfs"
	"bennypowers.dev/stratum/parser"
	"bennypowers.dev/stratum/token"
)

// candidates lists where a testdata path may live relative to the package
// under test. The shared fixtures sit at the module root.
func candidates(rel string) []string {
	return []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
		filepath.Join("..", "..", "..", "testdata", rel),
	}
}

// locate returns the first candidate for rel that exists on disk.
func locate(t *testing.T, rel string) string {
	t.Helper()
	for _, path := range candidates(rel) {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Fatalf("Could not find fixture %s under any testdata directory", rel)
	return ""
}

// NewFixtureFS copies a fixture directory into a MapFileSystem mounted at
// rootPath, so config and source loading run against known files.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	dir := locate(t, fixtureDir)
	mfs := mapfs.New()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		mfs.AddFile(filepath.Join(rootPath, rel), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}
	return mfs
}

// LoadFixtureFile reads a single fixture file.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()
	content, err := os.ReadFile(locate(t, fixturePath))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", fixturePath, err)
	}
	return content
}

// LoadLayers parses every token file in a fixture directory. Each file is
// named after its layer, e.g. "semantic.yaml" or "components.json".
func LoadLayers(t *testing.T, fixtureDir string) *parser.Result {
	t.Helper()

	dir := locate(t, fixtureDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read fixtures from %s: %v", fixtureDir, err)
	}

	var sources []parser.LayerSource
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		layer, err := token.ParseLayer(strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Failed to read fixture %s: %v", name, err)
		}
		group, err := parser.Decode(content)
		if err != nil {
			t.Fatalf("Failed to decode fixture %s: %v", name, err)
		}
		sources = append(sources, parser.LayerSource{Layer: layer, Group: group, Source: name})
	}

	result, err := parser.ParseAllLayers(sources)
	if err != nil {
		t.Fatalf("Failed to parse fixtures from %s: %v", fixtureDir, err)
	}
	return result
}

// ProjectTokens parses the shared fixture project.
func ProjectTokens(t *testing.T) []token.Token {
	t.Helper()
	return LoadLayers(t, filepath.Join("project", "tokens")).Tokens
}
