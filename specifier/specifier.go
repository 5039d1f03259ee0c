/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier parses and resolves token source specifiers: local
// paths, npm packages and https URLs.
package specifier

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind indicates the type of specifier.
type Kind int

const (
	// KindLocal is a local file path.
	KindLocal Kind = iota
	// KindNPM is an npm package specifier.
	KindNPM
	// KindURL is an https URL.
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindNPM:
		return "npm"
	case KindURL:
		return "url"
	default:
		return "local"
	}
}

// Specifier represents a parsed source specifier.
type Specifier struct {
	// Kind is the type of specifier.
	Kind Kind

	// Package is the npm package name (e.g., "@scope/pkg" or "pkg").
	Package string

	// File is the file path within the package, the local path, or the URL.
	File string

	// Raw is the original specifier string.
	Raw string
}

// npmPattern matches npm:@scope/pkg/path, npm:pkg/path, or bare npm:pkg
var npmPattern = regexp.MustCompile(`^npm:(@[^/]+/[^/]+|[^/]+)(/.*)?$`)

// Parse parses a specifier string into a Specifier struct.
func Parse(spec string) *Specifier {
	if strings.HasPrefix(spec, "npm:") {
		matches := npmPattern.FindStringSubmatch(spec)
		if len(matches) == 3 {
			return &Specifier{
				Kind:    KindNPM,
				Package: matches[1],
				File:    strings.TrimPrefix(matches[2], "/"),
				Raw:     spec,
			}
		}
	}

	if IsURL(spec) {
		return &Specifier{Kind: KindURL, File: spec, Raw: spec}
	}

	return &Specifier{
		Kind: KindLocal,
		File: spec,
		Raw:  spec,
	}
}

// IsURL reports whether spec is an https URL with a host.
// Plain http is not accepted.
func IsURL(spec string) bool {
	if !strings.HasPrefix(spec, "https://") {
		return false
	}
	u, err := url.Parse(spec)
	return err == nil && u.Host != ""
}

// IsPackageSpecifier returns true if the string is a valid npm specifier.
func IsPackageSpecifier(spec string) bool {
	return Parse(spec).Kind == KindNPM
}

// IsRemote returns true for specifiers that are not local paths.
func IsRemote(spec string) bool {
	return Parse(spec).Kind != KindLocal
}

// IsNPM returns true if this is an npm specifier.
func (s *Specifier) IsNPM() bool {
	return s.Kind == KindNPM
}

// IsURL returns true if this is an https URL.
func (s *Specifier) IsURL() bool {
	return s.Kind == KindURL
}

// IsLocal returns true if this is a local file path.
func (s *Specifier) IsLocal() bool {
	return s.Kind == KindLocal
}
