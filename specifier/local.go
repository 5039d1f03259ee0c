/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "path/filepath"

// LocalResolver handles local filesystem paths. Relative paths are joined
// to rootDir when one is set.
type LocalResolver struct {
	rootDir string
}

// NewLocalResolver creates a resolver for local filesystem paths.
func NewLocalResolver(rootDir string) *LocalResolver {
	return &LocalResolver{rootDir: rootDir}
}

// Resolve returns the local path, made absolute against the root.
func (r *LocalResolver) Resolve(spec string) (*ResolvedFile, error) {
	path := spec
	if r.rootDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(r.rootDir, path)
	}
	return &ResolvedFile{
		Specifier: spec,
		Path:      path,
		Kind:      KindLocal,
	}, nil
}

// CanResolve returns true for paths that are not package specifiers or URLs.
func (r *LocalResolver) CanResolve(spec string) bool {
	return !IsRemote(spec)
}
