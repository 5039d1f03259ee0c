/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"bennypowers.dev/stratum/token"
)

// Step is one hop of a reference chain.
type Step struct {
	Path        string      `json:"path"`
	Layer       token.Layer `json:"layer"`
	Mode        token.Mode  `json:"mode,omitempty"`
	CSSVariable string      `json:"cssVariable"`

	// Value is the reference followed from this hop, or the literal on the
	// final step of a complete chain.
	Value string `json:"value"`

	// Broken marks a final step whose reference has no target.
	Broken bool `json:"broken,omitempty"`

	// Cyclic marks a final step that revisits an earlier hop.
	Cyclic bool `json:"cyclic,omitempty"`
}

// Chain is the ordered list of hops from a token to its literal.
type Chain struct {
	Steps []Step `json:"steps"`

	// Status is the resolution status of the first step's token.
	Status token.Status `json:"status"`

	// Cycle lists the loop when the chain ends in one.
	Cycle []string `json:"cycle,omitempty"`

	// Err explains a broken or cyclic chain.
	Err error `json:"-"`
}

// Len returns the number of steps.
func (c Chain) Len() int {
	return len(c.Steps)
}

// Last returns the final step.
func (c Chain) Last() Step {
	if len(c.Steps) == 0 {
		return Step{}
	}
	return c.Steps[len(c.Steps)-1]
}

// Complete reports whether the chain ends at a literal.
func (c Chain) Complete() bool {
	last := c.Last()
	return len(c.Steps) > 0 && !last.Broken && !last.Cyclic
}

// Value returns the literal at the end of a complete chain.
func (c Chain) Value() (string, bool) {
	if !c.Complete() {
		return "", false
	}
	return c.Last().Value, true
}

// Layers returns the layer of each step.
func (c Chain) Layers() []token.Layer {
	out := make([]token.Layer, len(c.Steps))
	for i, s := range c.Steps {
		out[i] = s.Layer
	}
	return out
}

func stepOf(t token.Token, value string) Step {
	return Step{
		Path:        t.Path,
		Layer:       t.Layer,
		Mode:        t.Mode,
		CSSVariable: t.CSSVariable,
		Value:       value,
	}
}

// BuildReferenceChain records every hop from tok to its literal. A chain that
// cannot complete ends with a step marked Broken, or with a repeat of the
// revisited hop marked Cyclic. Tokens that were already resolved are followed
// through their alias.
func (r *Resolver) BuildReferenceChain(tok token.Token) Chain {
	hops, end := r.walk(tok, true)

	chain := Chain{Steps: make([]Step, 0, len(hops)+1)}
	for _, h := range hops {
		value := h.ref.Raw
		if value == "" {
			value = h.tok.Value
		}
		chain.Steps = append(chain.Steps, stepOf(h.tok, value))
	}

	last := &chain.Steps[len(chain.Steps)-1]
	switch {
	case end.loopAt >= 0:
		loop := hopPaths(hops[end.loopAt:])
		revisit := stepOf(hops[end.loopAt].tok, hops[end.loopAt].ref.Raw)
		revisit.Cyclic = true
		chain.Steps = append(chain.Steps, revisit)
		chain.Cycle = loop
		if end.loopAt == 0 {
			chain.Status = token.StatusCyclic
		} else {
			chain.Status = token.StatusUnresolved
		}
		chain.Err = &CycleError{Path: tok.Path, Cycle: loop}
	case end.err != nil:
		last.Broken = true
		chain.Status = token.StatusUnresolved
		chain.Err = end.err
	case end.missing != "":
		last.Broken = true
		chain.Status = token.StatusUnresolved
		chain.Err = &UnresolvedError{Path: tok.Path, Reference: end.missing}
	case len(hops) == 1:
		chain.Status = token.StatusLiteral
	default:
		chain.Status = token.StatusResolved
	}
	return chain
}
