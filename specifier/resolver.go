/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "fmt"

// ResolvedFile pairs a source specifier with where its content lives.
type ResolvedFile struct {
	// Specifier is the string as written in the config,
	// e.g. "npm:@acme/tokens/primitives.yaml".
	Specifier string

	// Path is a filesystem path for local files and installed packages,
	// the URL for https sources, and empty for a package that is not
	// installed (see Installed).
	Path string

	Kind Kind
}

// Installed reports whether the file can be read without the network.
// Package files that were not found locally resolve with an empty path when
// the resolver was built with DeferMissing.
func (f *ResolvedFile) Installed() bool {
	return f.Kind != KindURL && f.Path != ""
}

// Resolver maps specifiers onto files.
type Resolver interface {
	Resolve(spec string) (*ResolvedFile, error)

	// CanResolve reports whether Resolve handles spec at all.
	CanResolve(spec string) bool
}

// ChainResolver hands each specifier to the first resolver that accepts it.
type ChainResolver []Resolver

// NewChainResolver returns the resolvers as a chain, tried in order.
func NewChainResolver(resolvers ...Resolver) ChainResolver {
	return ChainResolver(resolvers)
}

func (c ChainResolver) Resolve(spec string) (*ResolvedFile, error) {
	for _, r := range c {
		if r.CanResolve(spec) {
			return r.Resolve(spec)
		}
	}
	return nil, fmt.Errorf("no resolver found for specifier: %s", spec)
}

func (c ChainResolver) CanResolve(spec string) bool {
	for _, r := range c {
		if r.CanResolve(spec) {
			return true
		}
	}
	return false
}
