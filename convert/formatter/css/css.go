/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package css provides CSS custom property formatting for design tokens.
package css

import (
	"fmt"
	"strings"

	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/token"
)

// Formatter outputs CSS custom properties, one block per selector.
type Formatter struct{}

// New creates a new CSS formatter.
func New() *Formatter {
	return &Formatter{}
}

type block struct {
	selector string
	tokens   []token.Token
}

// Format converts tokens to CSS. Mode-less and Light tokens go in the root
// block, other modes in their own selector or at-rule. Broken tokens are
// written as comments so the break stays visible, as are values that would
// end the declaration or block early.
func (f *Formatter) Format(tokens []token.Token, opts formatter.Options) ([]byte, error) {
	var blocks []*block
	bySelector := make(map[string]*block)
	for _, mode := range formatter.Modes(tokens) {
		sel := opts.ModeSelector(mode)
		if _, ok := bySelector[sel]; !ok {
			b := &block{selector: sel}
			bySelector[sel] = b
			blocks = append(blocks, b)
		}
	}
	// The root block always comes first.
	if root, ok := bySelector[""]; ok && blocks[0] != root {
		rest := make([]*block, 0, len(blocks))
		rest = append(rest, root)
		for _, b := range blocks {
			if b != root {
				rest = append(rest, b)
			}
		}
		blocks = rest
	}
	for _, t := range tokens {
		b := bySelector[opts.ModeSelector(t.Mode)]
		b.tokens = append(b.tokens, t)
	}

	var sb strings.Builder
	sb.WriteString(formatter.FormatHeader(opts.Header, formatter.CStyleComments))
	for i, b := range blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeBlock(&sb, b, opts)
	}
	return []byte(sb.String()), nil
}

func writeBlock(sb *strings.Builder, b *block, opts formatter.Options) {
	selector, indent := b.selector, "  "
	atRule := strings.HasPrefix(selector, "@")
	switch {
	case selector == "":
		selector = opts.RootSelector()
	case atRule:
		fmt.Fprintf(sb, "%s {\n", selector)
		selector, indent = opts.RootSelector(), "    "
		sb.WriteString("  ")
	}
	fmt.Fprintf(sb, "%s {\n", selector)
	for _, t := range b.tokens {
		writeDeclaration(sb, indent, t.CSSVariable, t)
		if opts.WordPress && t.WPVariable != "" {
			writeDeclaration(sb, indent, t.WPVariable, t)
		}
	}
	if atRule {
		sb.WriteString("  }\n")
	}
	sb.WriteString("}\n")
}

func writeDeclaration(sb *strings.Builder, indent, name string, t token.Token) {
	switch t.Status {
	case token.StatusUnresolved:
		fmt.Fprintf(sb, "%s/* %s: unresolved reference %s */\n", indent, name, comment(t.Value))
	case token.StatusCyclic:
		loop := t.Value
		if len(t.Cycle) > 0 {
			loop = strings.Join(append(append([]string(nil), t.Cycle...), t.Cycle[0]), " -> ")
		}
		fmt.Fprintf(sb, "%s/* %s: cyclic reference %s */\n", indent, name, comment(loop))
	default:
		if token.BreaksCSS(t.Value) {
			fmt.Fprintf(sb, "%s/* %s: value would break the block, omitted */\n", indent, name)
			return
		}
		fmt.Fprintf(sb, "%s%s: %s;\n", indent, name, t.Value)
	}
}

// comment keeps text from closing the comment it is written in.
func comment(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}
