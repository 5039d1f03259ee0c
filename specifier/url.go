/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
)

// URLResolver passes https URLs through. The content is fetched by the
// loader, which owns the network client.
type URLResolver struct{}

// NewURLResolver creates a resolver for https URLs.
func NewURLResolver() *URLResolver {
	return &URLResolver{}
}

// Resolve returns the URL as the path.
func (r *URLResolver) Resolve(spec string) (*ResolvedFile, error) {
	if !IsURL(spec) {
		return nil, fmt.Errorf("not an https url: %s", spec)
	}
	return &ResolvedFile{Specifier: spec, Path: spec, Kind: KindURL}, nil
}

// CanResolve returns true for https URLs.
func (r *URLResolver) CanResolve(spec string) bool {
	return IsURL(spec)
}
