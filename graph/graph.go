/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package graph provides dependency analysis over a token set.
package graph

import (
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/schema"
	"bennypowers.dev/stratum/token"
)

// Edge is a direct reference from one token to another.
type Edge struct {
	From token.Key `json:"from"`
	To   token.Key `json:"to"`

	// Reference is the raw reference string on the source token.
	Reference string `json:"reference"`

	// Dangling marks a reference whose target does not exist. To then holds
	// only the referenced path.
	Dangling bool `json:"dangling,omitempty"`
}

// Graph is a directed graph of token references. Construction always
// completes; cycles are reported by HasCycle and Cycles.
type Graph struct {
	nodes        []token.Key
	known        map[token.Key]bool
	edges        []Edge
	dependencies map[token.Key][]token.Key
	dependents   map[token.Key][]token.Key
}

// Build builds the reference graph of tokens. Targets are looked up the same
// way the resolver looks them up.
func Build(tokens []token.Token, opts ...resolver.Option) *Graph {
	ix := resolver.NewIndex(tokens, opts...)
	g := &Graph{
		known:        make(map[token.Key]bool, ix.Len()),
		dependencies: make(map[token.Key][]token.Key),
		dependents:   make(map[token.Key][]token.Key),
	}

	all := ix.Tokens()
	for _, tok := range all {
		k := tok.Key()
		if g.known[k] {
			continue
		}
		g.known[k] = true
		g.nodes = append(g.nodes, k)
	}

	for _, tok := range all {
		ref, ok := tok.RefTarget()
		if !ok {
			continue
		}
		from := tok.Key()
		target, found := ix.Target(tok, ref)
		if !found {
			to := token.Key{Path: ref.Path}
			if ref.HasLayer {
				to.Layer = ref.Layer
			}
			g.edges = append(g.edges, Edge{From: from, To: to, Reference: ref.Raw, Dangling: true})
			continue
		}
		to := target.Key()
		g.edges = append(g.edges, Edge{From: from, To: to, Reference: ref.Raw})
		g.dependencies[from] = append(g.dependencies[from], to)
		g.dependents[to] = append(g.dependents[to], from)
	}
	return g
}

// Nodes returns every token key in input order.
func (g *Graph) Nodes() []token.Key {
	return slices.Clone(g.nodes)
}

// Edges returns every reference, dangling ones included.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// Dangling returns the references whose target does not exist.
func (g *Graph) Dangling() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Dangling {
			out = append(out, e)
		}
	}
	return out
}

// Dependencies returns the keys the given token references directly.
func (g *Graph) Dependencies(key token.Key) []token.Key {
	return slices.Clone(g.dependencies[key])
}

// Dependents returns the keys that reference the given token directly.
func (g *Graph) Dependents(key token.Key) []token.Key {
	return slices.Clone(g.dependents[key])
}

// Affected returns every key that depends on the given token directly or
// through other tokens, nearest first.
func (g *Graph) Affected(key token.Key) []token.Key {
	seen := map[token.Key]bool{key: true}
	var out []token.Key
	queue := []token.Key{key}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range g.dependents[cur] {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			out = append(out, dep)
			queue = append(queue, dep)
		}
	}
	return out
}

// HasCycle returns true if the graph contains a circular dependency.
func (g *Graph) HasCycle() bool {
	visited := make(map[token.Key]bool)
	recStack := make(map[token.Key]bool)

	for _, node := range g.nodes {
		if g.hasCycleDFS(node, visited, recStack) {
			return true
		}
	}
	return false
}

func (g *Graph) hasCycleDFS(node token.Key, visited, recStack map[token.Key]bool) bool {
	if recStack[node] {
		return true
	}
	if visited[node] {
		return false
	}

	visited[node] = true
	recStack[node] = true

	for _, dep := range g.dependencies[node] {
		if g.hasCycleDFS(dep, visited, recStack) {
			return true
		}
	}

	recStack[node] = false
	return false
}

// Cycles returns each distinct loop once, rotated to start at the node that
// comes first in input order.
func (g *Graph) Cycles() [][]token.Key {
	order := make(map[token.Key]int, len(g.nodes))
	for i, n := range g.nodes {
		order[n] = i
	}

	visited := make(map[token.Key]bool)
	recStack := make(map[token.Key]bool)
	seen := make(map[string]bool)
	var cycles [][]token.Key

	var visit func(node token.Key, path []token.Key)
	visit = func(node token.Key, path []token.Key) {
		if recStack[node] {
			start := slices.Index(path, node)
			if start == -1 {
				panic(fmt.Sprintf("cycle detection invariant violated: node %v in recStack but not in path", node))
			}
			cycle := rotate(path[start:], order)
			id := cycleID(cycle)
			if !seen[id] {
				seen[id] = true
				cycles = append(cycles, cycle)
			}
			return
		}
		if visited[node] {
			return
		}
		visited[node] = true
		recStack[node] = true
		path = append(path, node)
		for _, dep := range g.dependencies[node] {
			visit(dep, path)
		}
		recStack[node] = false
	}

	for _, node := range g.nodes {
		visit(node, nil)
	}
	return cycles
}

func rotate(cycle []token.Key, order map[token.Key]int) []token.Key {
	first := 0
	for i, k := range cycle {
		if order[k] < order[cycle[first]] {
			first = i
		}
	}
	out := make([]token.Key, 0, len(cycle))
	out = append(out, cycle[first:]...)
	return append(out, cycle[:first]...)
}

func cycleID(cycle []token.Key) string {
	parts := make([]string, len(cycle))
	for i, k := range cycle {
		parts[i] = k.String()
	}
	return strings.Join(parts, "|")
}

// TopologicalSort returns keys in dependency order (dependencies first).
// Returns an error wrapping schema.ErrCircularReference if the graph has a cycle.
func (g *Graph) TopologicalSort() ([]token.Key, error) {
	if cycles := g.Cycles(); len(cycles) > 0 {
		return nil, fmt.Errorf("%w: %s", schema.ErrCircularReference, FormatKeys(cycles[0]))
	}

	visited := make(map[token.Key]bool)
	result := make([]token.Key, 0, len(g.nodes))

	for _, node := range g.nodes {
		if !visited[node] {
			g.topologicalSortDFS(node, visited, &result)
		}
	}

	return result, nil
}

func (g *Graph) topologicalSortDFS(node token.Key, visited map[token.Key]bool, stack *[]token.Key) {
	visited[node] = true

	for _, dep := range g.dependencies[node] {
		if !visited[dep] {
			g.topologicalSortDFS(dep, visited, stack)
		}
	}

	*stack = append(*stack, node)
}

// FormatKeys joins keys with arrows.
func FormatKeys(keys []token.Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, " → ")
}
