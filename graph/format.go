/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package graph

import (
	"strings"

	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/token"
)

// Markers written in place of a literal for chains that do not complete.
const (
	BrokenMarker = "<broken>"
	CycleMarker  = "<cycle>"
)

// FormatChain renders a chain as "A → B → C = #10b981".
func FormatChain(c resolver.Chain) string {
	if len(c.Steps) == 0 {
		return ""
	}
	paths := make([]string, len(c.Steps))
	for i, s := range c.Steps {
		paths[i] = s.Path
	}
	return strings.Join(paths, " → ") + " = " + chainValue(c)
}

func chainValue(c resolver.Chain) string {
	last := c.Last()
	switch {
	case last.Cyclic:
		return CycleMarker
	case last.Broken:
		return BrokenMarker
	default:
		return last.Value
	}
}

// Node is one hop of a chain as a nested tree. Each node holds the hop it
// references.
type Node struct {
	Path        string      `json:"path"`
	Layer       token.Layer `json:"layer"`
	Mode        token.Mode  `json:"mode,omitempty"`
	CSSVariable string      `json:"cssVariable"`
	Value       string      `json:"value"`
	Status      string      `json:"status,omitempty"`
	References  *Node       `json:"references,omitempty"`
}

// ChainTree renders a chain as nested nodes. The innermost node carries the
// literal, or a "broken" or "cycle" status.
func ChainTree(c resolver.Chain) *Node {
	var root, cur *Node
	for _, s := range c.Steps {
		n := &Node{
			Path:        s.Path,
			Layer:       s.Layer,
			Mode:        s.Mode,
			CSSVariable: s.CSSVariable,
			Value:       s.Value,
		}
		switch {
		case s.Cyclic:
			n.Status = "cycle"
		case s.Broken:
			n.Status = "broken"
		}
		if root == nil {
			root = n
		} else {
			cur.References = n
		}
		cur = n
	}
	return root
}
