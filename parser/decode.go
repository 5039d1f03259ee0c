/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/stratum/schema"
	"bennypowers.dev/stratum/token"
)

// Decode reads JSON, JSON with comments, or YAML into a raw token tree.
// Key order follows the source document. A root that is not a mapping
// returns an error wrapping schema.ErrNotATree.
func Decode(data []byte) (*token.Group, error) {
	src := data
	if isLikelyJSON(data) {
		src = yamlSafeStrings(jsonc.ToJSON(data))
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode token source: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, fmt.Errorf("%w: empty document", schema.ErrNotATree)
		}
		root = root.Content[0]
	}
	root = deref(root)
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: root is a %s", schema.ErrNotATree, kindName(root))
	}
	return decodeGroup(root), nil
}

// isLikelyJSON checks if data appears to be JSON rather than YAML.
func isLikelyJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case 0xEF, 0xBB, 0xBF: // UTF-8 BOM
			continue
		case '{', '[':
			return true
		default:
			return false
		}
	}
	return false
}

// yamlSafeStrings re-encodes JSON string literals that carry escapes, since
// the YAML scanner rejects some legal JSON escapes ("\/", surrogate pairs).
// Literals are rewritten in place and never span lines, so node line
// numbers still match the source.
func yamlSafeStrings(src []byte) []byte {
	var out []byte
	last := 0
	for i := 0; i < len(src); i++ {
		if src[i] != '"' {
			continue
		}
		start, escaped := i, false
		for i++; i < len(src) && src[i] != '"'; i++ {
			if src[i] == '\\' {
				escaped = true
				i++
			}
		}
		if i >= len(src) {
			break
		}
		if !escaped {
			continue
		}

		var s string
		if err := json.Unmarshal(src[start:i+1], &s); err != nil {
			continue
		}
		enc, err := json.Marshal(s)
		if err != nil {
			continue
		}
		out = append(out, src[last:start]...)
		out = append(out, enc...)
		last = i + 1
	}
	if out == nil {
		return src
	}
	return append(out, src[last:]...)
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case 0:
		return "empty document"
	default:
		return "node"
	}
}

func decodeGroup(n *yaml.Node) *token.Group {
	g := &token.Group{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], deref(n.Content[i+1])

		// YAML merge keys splice the anchored mapping in place.
		if k.Tag == "!!merge" {
			if v.Kind == yaml.MappingNode {
				g.Entries = append(g.Entries, decodeGroup(v).Entries...)
			}
			continue
		}

		key := k.Value
		if isMeta(key, "description") && v.Kind == yaml.ScalarNode {
			g.Description = v.Value
			continue
		}
		if strings.HasPrefix(key, "$") || isMeta(key, "type") && v.Kind == yaml.ScalarNode {
			// Group-level metadata; groups are never typed.
			continue
		}
		g.Entries = append(g.Entries, decodeEntry(key, k.Line, v))
	}
	return g
}

func decodeEntry(key string, line int, v *yaml.Node) *token.Entry {
	switch v.Kind {
	case yaml.MappingNode:
		if isLeafMapping(v) {
			return &token.Entry{Key: key, Leaf: decodeLeaf(v, line)}
		}
		return &token.Entry{Key: key, Group: decodeGroup(v)}
	case yaml.SequenceNode:
		g := &token.Group{}
		for i, item := range v.Content {
			item = deref(item)
			g.Entries = append(g.Entries, decodeEntry(strconv.Itoa(i), item.Line, item))
		}
		return &token.Entry{Key: key, Group: g}
	default:
		return &token.Entry{Key: key, Leaf: &token.Leaf{Value: scalar(v), Line: line}}
	}
}

// isLeafMapping reports whether a mapping defines a token rather than a group:
// it has a value key, or it carries only metadata keys such as a type.
func isLeafMapping(n *yaml.Node) bool {
	hasType := false
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		switch {
		case isMeta(key, "value"):
			return true
		case isMeta(key, "type"):
			hasType = true
		case isMeta(key, "description"), strings.HasPrefix(key, "$"):
		default:
			return false
		}
	}
	return hasType
}

func decodeLeaf(n *yaml.Node, line int) *token.Leaf {
	leaf := &token.Leaf{Line: line}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, v := n.Content[i].Value, deref(n.Content[i+1])
		switch {
		case isMeta(key, "value"):
			leaf.Value = nodeValue(v)
		case isMeta(key, "type"):
			leaf.Type = v.Value
		case isMeta(key, "description"):
			leaf.Description = v.Value
		}
	}
	return leaf
}

// nodeValue converts a value node into the loose shapes Leaf.Value accepts.
func nodeValue(n *yaml.Node) any {
	switch n.Kind {
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			items = append(items, nodeValue(deref(item)))
		}
		return items
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = nodeValue(deref(n.Content[i+1]))
		}
		return m
	default:
		return scalar(n)
	}
}

func scalar(n *yaml.Node) any {
	if n.Tag == "!!null" {
		return nil
	}
	return n.Value
}

// isMeta matches name and its $-prefixed form.
func isMeta(key, name string) bool {
	return key == name || key == "$"+name
}
