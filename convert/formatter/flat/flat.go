/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package flat provides flat variable-to-value JSON formatting for design tokens.
package flat

import (
	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/token"
)

// ModeSeparator joins a variable name and a mode in keys of mode variants.
const ModeSeparator = "@"

// Formatter outputs flat CSS variable to value JSON.
type Formatter struct{}

// New creates a new flat JSON formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format converts tokens to flat key-value JSON. Mode variants are keyed
// "--name@mode". Broken tokens keep their reference string as the value.
func (f *Formatter) Format(tokens []token.Token, opts formatter.Options) ([]byte, error) {
	result := make(map[string]string, len(tokens))
	for _, t := range tokens {
		result[Key(t.CSSVariable, t.Mode)] = t.Value
		if opts.WordPress && t.WPVariable != "" {
			result[Key(t.WPVariable, t.Mode)] = t.Value
		}
	}
	return formatter.MarshalJSON(result)
}

// Key returns the flat key of a variable in a mode.
func Key(name string, mode token.Mode) string {
	if mode == "" {
		return name
	}
	return name + ModeSeparator + token.KebabSegment(string(mode))
}
