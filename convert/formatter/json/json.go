/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package json provides nested JSON tree formatting for design tokens.
package json

import (
	"strings"

	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/token"
)

// Formatter outputs a nested JSON tree: layer slug, then mode when the token
// has one, then the path segments.
type Formatter struct{}

// New creates a new nested JSON formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format converts tokens to a nested JSON tree.
func (f *Formatter) Format(tokens []token.Token, opts formatter.Options) ([]byte, error) {
	tree := make(map[string]any)
	for _, t := range tokens {
		segments := []string{t.Layer.Slug()}
		if t.Mode != "" {
			segments = append(segments, string(t.Mode))
		}
		segments = append(segments, strings.Split(t.Path, ".")...)
		formatter.Nest(tree, segments, leaf(t))
	}
	return formatter.MarshalJSON(tree)
}

func leaf(t token.Token) map[string]any {
	m := map[string]any{
		"value":       t.Value,
		"type":        string(t.Type),
		"cssVariable": t.CSSVariable,
	}
	if t.WPVariable != "" {
		m["wpVariable"] = t.WPVariable
	}
	if t.Alias != "" {
		m["alias"] = t.Alias
	}
	if t.Description != "" {
		m["description"] = t.Description
	}
	if t.Status.Broken() {
		m["status"] = t.Status.String()
		if len(t.Cycle) > 0 {
			m["cycle"] = t.Cycle
		}
	}
	return m
}
