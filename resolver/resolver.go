/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver provides token reference resolution.
//
// Every call works on its own index built from a copy of its input, so
// resolution never mutates caller data and independent calls may run in
// parallel. A broken reference affects only the token that holds it:
// resolution reports it on that token and carries on with the rest.
package resolver

import (
	"fmt"

	"bennypowers.dev/stratum/schema"
	"bennypowers.dev/stratum/token"
)

// Option configures a Resolver or Index.
type Option func(*options)

type options struct {
	preferredMode token.Mode
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPreferredMode sets the mode picked for a target when the source token
// has no mode of its own or its mode has no variant.
func WithPreferredMode(mode token.Mode) Option {
	return func(o *options) {
		o.preferredMode = mode
	}
}

// Resolution is the outcome of resolving one token.
type Resolution struct {
	// Value is the literal, or the token's own reference string when broken.
	Value string

	// Type is the token's type, or the type found along the chain when the
	// token declared none.
	Type token.Type

	// Status is Literal, Resolved, Unresolved or Cyclic.
	Status token.Status

	// Cycle lists the loop when Status is Cyclic.
	Cycle []string

	// Err is an *UnresolvedError or *CycleError when the token is broken.
	Err error
}

// Resolver resolves references against a fixed token set.
type Resolver struct {
	index *Index
}

// New builds a resolver over a copy of tokens.
func New(tokens []token.Token, opts ...Option) *Resolver {
	return &Resolver{index: NewIndex(tokens, opts...)}
}

// Index returns the lookup index the resolver works against.
func (r *Resolver) Index() *Index {
	return r.index
}

// hop is one token visited while walking a chain.
type hop struct {
	tok token.Token
	ref token.Reference
}

// walkEnd describes how a walk stopped.
type walkEnd struct {
	// loopAt is the hop index the chain looped back to, or -1.
	loopAt int

	// missing is the reference whose target does not exist.
	missing string

	// err is set for a malformed reference string.
	err error
}

// walk follows references from start until a literal, a missing target or a
// revisited key. With followAlias, tokens that were already resolved are
// walked through their Alias so a resolved set still yields full chains.
func (r *Resolver) walk(start token.Token, followAlias bool) ([]hop, walkEnd) {
	var hops []hop
	onStack := make(map[token.Key]int)
	cur := start
	for {
		if pos, seen := onStack[cur.Key()]; seen {
			return hops, walkEnd{loopAt: pos}
		}
		onStack[cur.Key()] = len(hops)

		raw := cur.Reference
		if raw == "" && followAlias {
			raw = cur.Alias
		}
		if raw == "" {
			hops = append(hops, hop{tok: cur})
			return hops, walkEnd{loopAt: -1}
		}

		ref, ok := token.ParseReference(raw)
		if !ok {
			hops = append(hops, hop{tok: cur})
			return hops, walkEnd{loopAt: -1, missing: raw, err: fmt.Errorf("%s: %w: %q", cur.Path, schema.ErrInvalidReference, raw)}
		}
		hops = append(hops, hop{tok: cur, ref: ref})

		i, found := r.index.target(cur, ref)
		if !found {
			return hops, walkEnd{loopAt: -1, missing: ref.Raw}
		}
		cur = r.index.tokens[i]
	}
}

// ResolveOne resolves a single token. Tokens whose value is already literal
// are returned as they are. The token does not need to be part of the set.
func (r *Resolver) ResolveOne(tok token.Token) Resolution {
	if tok.Reference == "" {
		status := tok.Status
		if status != token.StatusResolved {
			status = token.StatusLiteral
		}
		return Resolution{Value: tok.Value, Type: tok.Type, Status: status}
	}

	hops, end := r.walk(tok, false)
	res := Resolution{Value: tok.Reference, Type: chainType(hops)}

	switch {
	case end.loopAt == 0:
		res.Status = token.StatusCyclic
		res.Cycle = hopPaths(hops)
		res.Err = &CycleError{Path: tok.Path, Cycle: res.Cycle}
	case end.loopAt > 0:
		res.Status = token.StatusUnresolved
		res.Err = &CycleError{Path: tok.Path, Cycle: hopPaths(hops[end.loopAt:])}
	case end.err != nil:
		res.Status = token.StatusUnresolved
		res.Err = end.err
	case end.missing != "":
		res.Status = token.StatusUnresolved
		res.Err = &UnresolvedError{Path: tok.Path, Reference: end.missing}
	default:
		last := hops[len(hops)-1].tok
		res.Value = last.Value
		res.Status = token.StatusResolved
	}

	if res.Type == "" {
		res.Type = token.TypeString
	}
	return res
}

// chainType returns the first declared type along a chain.
func chainType(hops []hop) token.Type {
	for _, h := range hops {
		if h.tok.Type != "" {
			return h.tok.Type
		}
	}
	return ""
}

func hopPaths(hops []hop) []string {
	paths := make([]string, len(hops))
	for i, h := range hops {
		paths[i] = h.tok.Path
	}
	return paths
}

// ResolveAll resolves every token in the resolver's set and returns a new
// slice in input order.
func (r *Resolver) ResolveAll() []token.Token {
	out := make([]token.Token, len(r.index.tokens))
	for i, t := range r.index.tokens {
		out[i] = Apply(t, r.ResolveOne(t))
	}
	return out
}

// ResolveAll resolves every token and returns a new slice in input order.
// Broken tokens are reported on the token rather than failing the batch.
// Resolving an already resolved set returns an equal set.
func ResolveAll(tokens []token.Token, opts ...Option) []token.Token {
	return New(tokens, opts...).ResolveAll()
}

// Apply returns a copy of tok carrying the outcome of res.
// A resolved token keeps its reference as Alias; broken tokens keep their
// reference and raw value so the break stays visible.
func Apply(tok token.Token, res Resolution) token.Token {
	tok = tok.Clone()
	switch res.Status {
	case token.StatusResolved:
		if tok.Reference != "" {
			tok.Alias = tok.Reference
			tok.Reference = ""
		}
		tok.Value = res.Value
		tok.Cycle = nil
	case token.StatusUnresolved:
		tok.Value = res.Value
		tok.Cycle = nil
	case token.StatusCyclic:
		tok.Value = res.Value
		tok.Cycle = append([]string(nil), res.Cycle...)
	default:
		return tok
	}
	tok.Status = res.Status
	tok.Type = res.Type
	return tok
}
