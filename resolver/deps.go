/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"bennypowers.dev/stratum/token"
)

// Dependents returns every token that references path directly, in input
// order. References are matched whether still pending or already resolved.
// Transitive dependents are not included; see graph.Graph.Affected.
//
// This is a linear scan per call. A reverse index would be the place to
// start if token sets grow by orders of magnitude.
func Dependents(tokens []token.Token, path string) []token.Token {
	var out []token.Token
	for _, t := range tokens {
		ref, ok := t.RefTarget()
		if ok && ref.Path == path {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Dependencies returns every token reached by following references from the
// first token with the given path, excluding that token. A loop contributes
// each of its tokens once. Returns nil when no token has the path.
func Dependencies(tokens []token.Token, path string, opts ...Option) []token.Token {
	r := New(tokens, opts...)
	start, ok := r.index.FindPath(path)
	if !ok {
		return nil
	}
	return r.Dependencies(start)
}

// Dependencies returns the tokens reached from tok, excluding tok.
func (r *Resolver) Dependencies(tok token.Token) []token.Token {
	hops, _ := r.walk(tok, true)
	out := make([]token.Token, 0, len(hops))
	for _, h := range hops[1:] {
		out = append(out, h.tok.Clone())
	}
	return out
}
