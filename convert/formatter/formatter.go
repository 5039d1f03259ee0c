/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package formatter provides the interface and common utilities for token formatters.
package formatter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/stratum/token"
)

// Formatter defines the interface for output formatters.
// Formatters receive resolved tokens and never resolve references themselves.
type Formatter interface {
	// Format converts tokens to the target format.
	Format(tokens []token.Token, opts Options) ([]byte, error)
}

// Options configures formatter behavior.
type Options struct {
	// Header is a banner written as a comment where the format allows one.
	Header string

	// Selector is the CSS selector for mode-less tokens. Empty means ":root".
	Selector string

	// ModeSelectors maps a mode to the CSS selector or at-rule its block is
	// written under. Modes without an entry use DefaultModeSelectors.
	ModeSelectors map[token.Mode]string

	// WordPress also writes --wp--custom-- variables for Greenshift tokens.
	WordPress bool

	// PreferredMode picks the variant single-mode formats write when a path
	// has several. Without it the mode-less variant wins, then the first seen.
	PreferredMode token.Mode
}

// DefaultModeSelectors are the CSS blocks per mode when none are configured.
// Light tokens are written into the root block.
var DefaultModeSelectors = map[token.Mode]string{
	token.ModeDark:    `[data-theme="dark"]`,
	token.ModeMobile:  "@media (max-width: 767px)",
	token.ModeDesktop: "@media (min-width: 768px)",
}

// RootSelector returns the selector for mode-less tokens.
func (o Options) RootSelector() string {
	if o.Selector == "" {
		return ":root"
	}
	return o.Selector
}

// ModeSelector returns the selector or at-rule for a mode's block.
// The empty string means the mode shares the root block, which is the case
// for mode-less and Light tokens unless configured otherwise.
func (o Options) ModeSelector(mode token.Mode) string {
	if s, ok := o.ModeSelectors[mode]; ok {
		return s
	}
	if mode == "" || mode == token.ModeLight {
		return ""
	}
	if s, ok := DefaultModeSelectors[mode]; ok {
		return s
	}
	return fmt.Sprintf(`[data-mode="%s"]`, token.KebabSegment(string(mode)))
}

// CommentStyle describes how a format writes block comments.
type CommentStyle struct {
	Open, LinePrefix, Close string
}

// CStyleComments are /* */ block comments.
var CStyleComments = CommentStyle{Open: "/*\n", LinePrefix: " * ", Close: " */\n"}

// FormatHeader renders a header as a comment followed by a blank line.
func FormatHeader(header string, style CommentStyle) string {
	header = strings.TrimRight(header, "\n")
	if header == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(style.Open)
	for _, line := range strings.Split(header, "\n") {
		sb.WriteString(strings.TrimRight(style.LinePrefix+line, " "))
		sb.WriteByte('\n')
	}
	sb.WriteString(style.Close)
	sb.WriteByte('\n')
	return sb.String()
}

// Modes returns the distinct modes present in tokens in first-seen order,
// with the mode-less group first when present.
func Modes(tokens []token.Token) []token.Mode {
	seen := make(map[token.Mode]bool)
	var out []token.Mode
	for _, t := range tokens {
		if t.Mode == "" && !seen[""] {
			seen[""] = true
			out = append([]token.Mode{""}, out...)
			continue
		}
		if !seen[t.Mode] {
			seen[t.Mode] = true
			out = append(out, t.Mode)
		}
	}
	return out
}

// PickVariants keeps one token per (layer, path): the preferred mode, else
// the mode-less variant, else the first seen. Input order is kept.
func PickVariants(tokens []token.Token, preferred token.Mode) []token.Token {
	type lp struct {
		layer token.Layer
		path  string
	}
	rank := func(m token.Mode) int {
		switch {
		case preferred != "" && m == preferred:
			return 0
		case m == "":
			return 1
		default:
			return 2
		}
	}
	best := make(map[lp]int)
	var order []lp
	for i, t := range tokens {
		k := lp{t.Layer, t.Path}
		j, ok := best[k]
		if !ok {
			best[k] = i
			order = append(order, k)
			continue
		}
		if rank(t.Mode) < rank(tokens[j].Mode) {
			best[k] = i
		}
	}
	out := make([]token.Token, 0, len(order))
	for _, k := range order {
		out = append(out, tokens[best[k]])
	}
	return out
}

// DefaultKey holds a leaf's data when the same path is also a group.
const DefaultKey = "$default"

// Nest writes leaf into tree at the given path segments, creating groups on
// the way.
func Nest(tree map[string]any, segments []string, leaf any) {
	cur := tree
	for _, seg := range segments[:len(segments)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			if existing, had := cur[seg]; had {
				next[DefaultKey] = existing
			}
			cur[seg] = next
		}
		cur = next
	}
	last := segments[len(segments)-1]
	if group, ok := cur[last].(map[string]any); ok && isGroup(group) {
		group[DefaultKey] = leaf
		return
	}
	cur[last] = leaf
}

// isGroup tells a nested group from a leaf map written by a formatter.
// Leaf maps always carry a "value" key.
func isGroup(m map[string]any) bool {
	_, leaf := m["value"]
	return !leaf
}

// MarshalJSON encodes v as indented JSON with a trailing newline.
func MarshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// SplitIntoWords splits a string on hyphens, underscores, dots, spaces and
// camelCase boundaries.
func SplitIntoWords(s string) []string {
	var words []string
	var current strings.Builder

	prev := rune(0)
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == '.' || r == ' ' || r == '/':
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prev = r
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// ToKebabCase converts a string to kebab-case.
func ToKebabCase(s string) string {
	return strings.ToLower(strings.Join(SplitIntoWords(s), "-"))
}

// ToTitleCase converts a string to Title Case words.
func ToTitleCase(s string) string {
	// Casers keep state, so each call gets its own.
	return cases.Title(language.English).String(strings.Join(SplitIntoWords(s), " "))
}
