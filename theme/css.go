/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package theme

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"

	"bennypowers.dev/stratum/schema"
)

// FromCSS reads custom property declarations from CSS, one snapshot per
// selector. Rules inside at-rules are keyed by the at-rule prelude and the
// selector joined by a space, e.g. "@media (max-width: 767px) :root".
// Declarations of a selector that appears more than once are merged in
// source order. Only custom properties (--name) are read.
func FromCSS(src []byte) (map[string]Snapshot, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_css.Language())); err != nil {
		return nil, fmt.Errorf("load css grammar: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: css could not be parsed", schema.ErrInvalidDocument)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: css syntax error", schema.ErrInvalidDocument)
	}

	r := cssReader{src: src, out: make(map[string]Snapshot)}
	r.children(root, "")
	return r.out, nil
}

type cssReader struct {
	src []byte
	out map[string]Snapshot
}

func (r *cssReader) children(n *tree_sitter.Node, prefix string) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch kind := child.Kind(); {
		case kind == "rule_set":
			r.ruleSet(child, prefix)
		case kind == "declaration":
			r.declaration(child, prefix)
		case strings.HasSuffix(kind, "_statement"):
			r.atRule(child, prefix)
		}
	}
}

func (r *cssReader) ruleSet(n *tree_sitter.Node, prefix string) {
	var selector string
	var block *tree_sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "selectors":
			selector = strings.Join(strings.Fields(child.Utf8Text(r.src)), " ")
		case "block":
			block = child
		}
	}
	if block == nil {
		return
	}
	r.children(block, join(prefix, selector))
}

func (r *cssReader) atRule(n *tree_sitter.Node, prefix string) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() != "block" {
			continue
		}
		prelude := string(r.src[n.StartByte():child.StartByte()])
		r.children(child, join(prefix, strings.Join(strings.Fields(prelude), " ")))
		return
	}
}

func (r *cssReader) declaration(n *tree_sitter.Node, selector string) {
	var name string
	start, end := uint(0), n.EndByte()
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "property_name":
			name = child.Utf8Text(r.src)
		case ":":
			if start == 0 {
				start = child.EndByte()
			}
		case ";":
			end = child.StartByte()
		}
	}
	if !strings.HasPrefix(name, "--") || start == 0 || start > end {
		return
	}
	value := strings.TrimSpace(string(r.src[start:end]))

	snap, ok := r.out[selector]
	if !ok {
		snap = Snapshot{Values: make(map[string]string)}
		r.out[selector] = snap
	}
	snap.Values[name] = value
}

func join(prefix, s string) string {
	if prefix == "" {
		return s
	}
	return prefix + " " + s
}
