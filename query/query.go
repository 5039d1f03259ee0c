/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package query filters token sets and summarizes them.
package query

import (
	"sort"
	"strings"

	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/token"
)

// Filter selects tokens. Empty fields match everything.
type Filter struct {
	// Layers keeps tokens in any of these layers.
	Layers []token.Layer

	// Modes keeps tokens in any of these modes. The empty mode selects
	// mode-less tokens.
	Modes []token.Mode

	// Prefix keeps tokens whose path starts with this string.
	Prefix string

	// Types keeps tokens of any of these types. Matched after resolution,
	// so untyped references match the type they inherit.
	Types []token.Type

	// Resolve resolves the whole set before filtering. Without it tokens keep
	// their Reference.
	Resolve bool

	// PreferredMode is passed to the resolver.
	PreferredMode token.Mode
}

// Result is the outcome of a query.
type Result struct {
	Tokens []token.Token `json:"tokens"`
	Stats  Stats         `json:"stats"`
}

// Stats summarizes a token list.
type Stats struct {
	Count  int           `json:"count"`
	Types  []token.Type  `json:"types"`
	Modes  []token.Mode  `json:"modes"`
	Layers []token.Layer `json:"layers"`
}

// Run filters tokens. The whole set is resolved before filtering so that
// references crossing the filter boundary still resolve.
func Run(tokens []token.Token, f Filter) Result {
	src := tokens
	if f.Resolve {
		src = resolver.ResolveAll(tokens, resolver.WithPreferredMode(f.PreferredMode))
	}
	out := make([]token.Token, 0, len(src))
	for _, t := range src {
		if f.Match(t) {
			out = append(out, t.Clone())
		}
	}
	return Result{Tokens: out, Stats: Summarize(out)}
}

// Match reports whether a token passes the filter.
func (f Filter) Match(t token.Token) bool {
	if len(f.Layers) > 0 && !contains(f.Layers, t.Layer) {
		return false
	}
	if len(f.Modes) > 0 && !contains(f.Modes, t.Mode) {
		return false
	}
	if f.Prefix != "" && !strings.HasPrefix(t.Path, f.Prefix) {
		return false
	}
	if len(f.Types) > 0 && !contains(f.Types, t.Type) {
		return false
	}
	return true
}

// Summarize computes stats with sorted distinct values.
func Summarize(tokens []token.Token) Stats {
	types := make(map[token.Type]bool)
	modes := make(map[token.Mode]bool)
	layers := make(map[token.Layer]bool)
	for _, t := range tokens {
		if t.Type != "" {
			types[t.Type] = true
		}
		modes[t.Mode] = true
		layers[t.Layer] = true
	}

	s := Stats{
		Count:  len(tokens),
		Types:  make([]token.Type, 0, len(types)),
		Modes:  make([]token.Mode, 0, len(modes)),
		Layers: make([]token.Layer, 0, len(layers)),
	}
	for ty := range types {
		s.Types = append(s.Types, ty)
	}
	for m := range modes {
		s.Modes = append(s.Modes, m)
	}
	for l := range layers {
		s.Layers = append(s.Layers, l)
	}
	sort.Slice(s.Types, func(i, j int) bool { return s.Types[i] < s.Types[j] })
	sort.Slice(s.Modes, func(i, j int) bool { return s.Modes[i] < s.Modes[j] })
	sort.Slice(s.Layers, func(i, j int) bool { return s.Layers[i] < s.Layers[j] })
	return s
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
