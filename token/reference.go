/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"regexp"
	"strings"
)

// Reference is a parsed symbolic reference to another token.
type Reference struct {
	// Raw is the original reference string, e.g. "{Color.Emerald.400}".
	Raw string

	// Path is the referenced token path.
	Path string

	// Layer is the explicitly qualified target layer, when HasLayer is true.
	Layer Layer

	// HasLayer is true for layer-qualified references like "{semantic:Color.Brand}".
	HasLayer bool
}

var (
	// referencePattern matches a whole-value reference with an optional layer qualifier.
	referencePattern = regexp.MustCompile(`^\{(?:([A-Za-z]+):)?([^{}:]+)\}$`)

	// bracePattern matches any brace, used to flag literals that look like broken references.
	bracePattern = regexp.MustCompile(`[{}]`)
)

// ParseReference parses a whole-value reference.
// Returns false when s is not a well-formed reference; a qualifier that is not
// a layer name also makes the reference malformed.
func ParseReference(s string) (Reference, bool) {
	s = strings.TrimSpace(s)
	m := referencePattern.FindStringSubmatch(s)
	if m == nil {
		return Reference{}, false
	}
	path := m[2]
	if path != strings.TrimSpace(path) || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") || strings.Contains(path, "..") {
		return Reference{}, false
	}
	ref := Reference{Raw: s, Path: path}
	if m[1] != "" {
		layer, err := ParseLayer(m[1])
		if err != nil {
			return Reference{}, false
		}
		ref.Layer = layer
		ref.HasLayer = true
	}
	return ref, true
}

// IsReference reports whether s is a well-formed whole-value reference.
func IsReference(s string) bool {
	_, ok := ParseReference(s)
	return ok
}

// IsAmbiguous reports whether s contains braces without being a well-formed
// reference. Such literals are kept but flagged.
func IsAmbiguous(s string) bool {
	return bracePattern.MatchString(s) && !IsReference(s)
}

// FormatReference builds the reference string for a path.
func FormatReference(path string) string {
	return "{" + path + "}"
}

// FormatQualifiedReference builds a layer-qualified reference string.
func FormatQualifiedReference(layer Layer, path string) string {
	return "{" + layer.Slug() + ":" + path + "}"
}
