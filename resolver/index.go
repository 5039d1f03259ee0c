/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"slices"

	"bennypowers.dev/stratum/token"
)

type layerPath struct {
	layer token.Layer
	path  string
}

type variable struct {
	name string
	mode token.Mode
}

// Index is a lookup table over a private copy of a token set.
// It is read-only after construction and safe for concurrent use.
type Index struct {
	tokens    []token.Token
	byKey     map[token.Key]int
	variants  map[layerPath][]int
	byPath    map[string]int
	variables map[variable]int
	preferred token.Mode
}

// NewIndex builds an index over a copy of tokens. When two tokens share a
// key, the first one wins.
func NewIndex(tokens []token.Token, opts ...Option) *Index {
	o := newOptions(opts)
	ix := &Index{
		tokens:    token.CloneAll(tokens),
		byKey:     make(map[token.Key]int, len(tokens)),
		variants:  make(map[layerPath][]int),
		byPath:    make(map[string]int),
		variables: make(map[variable]int, len(tokens)),
		preferred: o.preferredMode,
	}
	for i, t := range ix.tokens {
		k := t.Key()
		if _, dup := ix.byKey[k]; dup {
			continue
		}
		ix.byKey[k] = i
		lp := layerPath{t.Layer, t.Path}
		ix.variants[lp] = append(ix.variants[lp], i)
		if _, ok := ix.byPath[t.Path]; !ok {
			ix.byPath[t.Path] = i
		}
		for _, name := range []string{t.CSSVariable, t.WPVariable} {
			if name == "" {
				continue
			}
			v := variable{name, t.Mode}
			if _, ok := ix.variables[v]; !ok {
				ix.variables[v] = i
			}
		}
	}
	return ix
}

// Len returns the number of indexed tokens.
func (ix *Index) Len() int {
	return len(ix.tokens)
}

// Tokens returns a copy of the indexed tokens in input order.
func (ix *Index) Tokens() []token.Token {
	return token.CloneAll(ix.tokens)
}

// Lookup returns the token with exactly this key.
func (ix *Index) Lookup(key token.Key) (token.Token, bool) {
	i, ok := ix.byKey[key]
	if !ok {
		return token.Token{}, false
	}
	return ix.tokens[i], true
}

// FindPath returns the first token with the given path in any layer or mode.
func (ix *Index) FindPath(path string) (token.Token, bool) {
	i, ok := ix.byPath[path]
	if !ok {
		return token.Token{}, false
	}
	return ix.tokens[i], true
}

// Variants returns every mode variant of a path in a layer, in input order.
func (ix *Index) Variants(layer token.Layer, path string) []token.Token {
	idxs := ix.variants[layerPath{layer, path}]
	out := make([]token.Token, len(idxs))
	for i, idx := range idxs {
		out[i] = ix.tokens[idx]
	}
	return out
}

// ByCSSVariable returns the token with a CSS or WordPress variable name in a
// mode, falling back to the mode-less token of that name.
func (ix *Index) ByCSSVariable(name string, mode token.Mode) (token.Token, bool) {
	if i, ok := ix.variables[variable{name, mode}]; ok {
		return ix.tokens[i], true
	}
	if mode != "" {
		if i, ok := ix.variables[variable{name, ""}]; ok {
			return ix.tokens[i], true
		}
	}
	return token.Token{}, false
}

// Target returns the token a reference from src points at.
//
// A layer-qualified reference searches only that layer. Otherwise the layers
// src may reference are searched nearest first, then src's own layer, then
// the remaining layers. Within a layer the variant in src's mode wins, then
// the preferred mode, then the mode-less variant, then the first registered.
func (ix *Index) Target(src token.Token, ref token.Reference) (token.Token, bool) {
	i, ok := ix.target(src, ref)
	if !ok {
		return token.Token{}, false
	}
	return ix.tokens[i], true
}

func (ix *Index) target(src token.Token, ref token.Reference) (int, bool) {
	for _, layer := range searchOrder(src.Layer, ref) {
		idxs := ix.variants[layerPath{layer, ref.Path}]
		if len(idxs) == 0 {
			continue
		}
		return ix.pick(idxs, src.Mode), true
	}
	return 0, false
}

func (ix *Index) pick(idxs []int, mode token.Mode) int {
	var order []token.Mode
	if mode != "" {
		order = append(order, mode)
	}
	if ix.preferred != "" {
		order = append(order, ix.preferred)
	}
	order = append(order, "")
	for _, want := range order {
		for _, i := range idxs {
			if ix.tokens[i].Mode == want {
				return i
			}
		}
	}
	return idxs[0]
}

func searchOrder(src token.Layer, ref token.Reference) []token.Layer {
	if ref.HasLayer {
		return []token.Layer{ref.Layer}
	}
	order := make([]token.Layer, 0, len(token.Layers))
	order = append(order, src.Targets()...)
	order = append(order, src)
	for _, l := range token.Layers {
		if !slices.Contains(order, l) {
			order = append(order, l)
		}
	}
	return order
}
