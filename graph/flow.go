/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package graph

import (
	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/token"
)

// IsValidLayerFlow reports whether the edge's source layer may reference its
// target layer. Dangling edges have no target layer and always pass.
func IsValidLayerFlow(e Edge) bool {
	if e.Dangling {
		return true
	}
	return e.From.Layer.CanReference(e.To.Layer)
}

// FlowViolations returns the edges that reference a layer they should not.
// Violations are advisory; the resolver still follows them.
func (g *Graph) FlowViolations() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if !IsValidLayerFlow(e) {
			out = append(out, e)
		}
	}
	return out
}

// SkippedLayer is a chain with a hop that jumps more than one tier, such as a
// component referencing a primitive directly.
type SkippedLayer struct {
	Chain resolver.Chain `json:"chain"`

	// From and To are the layers of the first offending hop.
	From token.Layer `json:"from"`
	To   token.Layer `json:"to"`
}

// ChainsWithSkippedLayers returns, for every referencing token, its chain
// when that chain contains a hop jumping more than one tier.
func ChainsWithSkippedLayers(tokens []token.Token, opts ...resolver.Option) []SkippedLayer {
	r := resolver.New(tokens, opts...)
	var out []SkippedLayer
	for _, tok := range r.Index().Tokens() {
		if _, ok := tok.RefTarget(); !ok {
			continue
		}
		chain := r.BuildReferenceChain(tok)
		for i := 1; i < len(chain.Steps); i++ {
			from, to := chain.Steps[i-1].Layer, chain.Steps[i].Layer
			if from.Tier()-to.Tier() > 1 {
				out = append(out, SkippedLayer{Chain: chain, From: from, To: to})
				break
			}
		}
	}
	return out
}
