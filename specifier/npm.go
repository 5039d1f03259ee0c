/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
	"path/filepath"
	"strings"

	stratumfs "bennypowers.dev/stratum/fs"
)

// NPMResolver finds npm: package files in node_modules, searching from
// rootDir up to the filesystem root the way Node does.
type NPMResolver struct {
	fs      stratumfs.FileSystem
	rootDir string

	// deferMissing resolves uninstalled packages with an empty path
	// instead of failing, so the loader can fetch them from a CDN.
	deferMissing bool
}

// NPMOption configures an NPMResolver.
type NPMOption func(*NPMResolver)

// DeferMissing makes packages that are not installed resolve with an empty
// path rather than an error.
func DeferMissing() NPMOption {
	return func(r *NPMResolver) { r.deferMissing = true }
}

// NewNPMResolver returns a resolver that searches node_modules from rootDir.
func NewNPMResolver(fs stratumfs.FileSystem, rootDir string, opts ...NPMOption) *NPMResolver {
	r := &NPMResolver{fs: fs, rootDir: rootDir}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *NPMResolver) Resolve(spec string) (*ResolvedFile, error) {
	parsed := Parse(spec)
	if parsed.Kind != KindNPM {
		return nil, fmt.Errorf("not an npm specifier: %s", spec)
	}

	start, err := filepath.Abs(r.rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", r.rootDir, err)
	}

	for dir := start; ; dir = filepath.Dir(dir) {
		modules := filepath.Join(dir, "node_modules")
		candidate := filepath.Join(modules, parsed.Package, parsed.File)
		if !isInsideDir(candidate, modules) {
			return nil, fmt.Errorf("path traversal detected in specifier: %s", spec)
		}
		if r.fs.Exists(candidate) {
			return &ResolvedFile{Specifier: spec, Path: candidate, Kind: KindNPM}, nil
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}

	if r.deferMissing {
		return &ResolvedFile{Specifier: spec, Kind: KindNPM}, nil
	}
	return nil, fmt.Errorf("package not found: %s (looked in node_modules starting from %s)", parsed.Package, start)
}

func (r *NPMResolver) CanResolve(spec string) bool {
	return strings.HasPrefix(spec, "npm:")
}

// isInsideDir reports whether path is within dir.
func isInsideDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
