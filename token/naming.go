/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"sort"
	"strings"
)

// KebabSegment lower-cases a path segment and replaces every character
// outside [a-z0-9] with a single dash.
func KebabSegment(segment string) string {
	var sb strings.Builder
	sb.Grow(len(segment))
	dash := false
	for _, r := range strings.ToLower(segment) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.Trim(sb.String(), "-")
}

// CSSVariableName returns the custom property name for a path in a layer,
// e.g. "--primitives-color-slate-500".
//
// Paths that differ only in case or punctuation map to the same name
// ("Spacing.2-5" and "Spacing.2.5"); use Collisions to detect that.
func CSSVariableName(layer Layer, path string) string {
	parts := []string{layer.Slug()}
	for _, seg := range strings.Split(path, ".") {
		if k := KebabSegment(seg); k != "" {
			parts = append(parts, k)
		}
	}
	return "--" + strings.Join(parts, "-")
}

// WPVariableName returns the WordPress theme.json custom property name for a
// path, e.g. "--wp--custom--button--background--default".
func WPVariableName(path string) string {
	parts := []string{"--wp", "custom"}
	for _, seg := range strings.Split(path, ".") {
		if k := KebabSegment(seg); k != "" {
			parts = append(parts, k)
		}
	}
	return strings.Join(parts, "--")
}

// Collision is a CSS variable name generated for more than one distinct path.
type Collision struct {
	CSSVariable string
	Layer       Layer
	Paths       []string
}

// Collisions reports CSS variable names shared by distinct paths.
// Mode variants of one path share a name legitimately and are not collisions.
func Collisions(tokens []Token) []Collision {
	type entry struct {
		layer Layer
		paths []string
	}
	byName := make(map[string]*entry)
	var order []string
	for _, t := range tokens {
		e, ok := byName[t.CSSVariable]
		if !ok {
			e = &entry{layer: t.Layer}
			byName[t.CSSVariable] = e
			order = append(order, t.CSSVariable)
		}
		found := false
		for _, p := range e.paths {
			if p == t.Path {
				found = true
				break
			}
		}
		if !found {
			e.paths = append(e.paths, t.Path)
		}
	}

	var result []Collision
	for _, name := range order {
		e := byName[name]
		if len(e.paths) < 2 {
			continue
		}
		paths := append([]string(nil), e.paths...)
		sort.Strings(paths)
		result = append(result, Collision{CSSVariable: name, Layer: e.layer, Paths: paths})
	}
	return result
}

// BreaksCSS reports whether value cannot be written as a custom property
// value as-is: it holds a line break, or a ';', '{' or '}' outside quotes
// and parentheses. "url(data:image/svg+xml;utf8,...)" is fine.
func BreaksCSS(value string) bool {
	var quote rune
	depth := 0
	escaped := false
	for _, r := range value {
		switch {
		case r == '\n' || r == '\r' || r == '\f':
			return true
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && (r == ';' || r == '{' || r == '}'):
			return true
		}
	}
	return quote != 0 || depth != 0
}
