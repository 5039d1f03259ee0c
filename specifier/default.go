/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import stratumfs "bennypowers.dev/stratum/fs"

// NewDefaultResolver chains npm:, https and local path resolution. rootDir
// is where the node_modules search starts and what relative paths join to.
func NewDefaultResolver(fs stratumfs.FileSystem, rootDir string, opts ...NPMOption) Resolver {
	return NewChainResolver(
		NewNPMResolver(fs, rootDir, opts...),
		NewURLResolver(),
		NewLocalResolver(rootDir),
	)
}
