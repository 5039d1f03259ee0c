/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser flattens raw layered token trees into addressable tokens.
package parser

import (
	"fmt"

	"bennypowers.dev/stratum/token"
)

// Skip is a leaf that could not be turned into a token.
type Skip struct {
	// Source names the file or specifier the leaf came from, when known.
	Source string `json:"source,omitempty"`

	Path  string      `json:"path"`
	Layer token.Layer `json:"layer"`
	Mode  token.Mode  `json:"mode,omitempty"`
	Line  int         `json:"line,omitempty"`

	// Reason wraps schema.ErrMissingValue or another parse sentinel.
	Reason error `json:"-"`
}

func (s Skip) String() string {
	loc := s.Layer.Slug() + ":" + s.Path
	if s.Mode != "" {
		loc += "[" + string(s.Mode) + "]"
	}
	if s.Source != "" {
		if s.Line > 0 {
			loc = fmt.Sprintf("%s:%d %s", s.Source, s.Line, loc)
		} else {
			loc = s.Source + " " + loc
		}
	}
	return fmt.Sprintf("%s: %v", loc, s.Reason)
}

// Result is the outcome of parsing one or more layers.
// Parsing never stops on a bad leaf; bad leaves land in Skipped.
type Result struct {
	// Tokens are the parsed tokens in traversal order.
	Tokens []token.Token

	// Skipped are malformed leaves.
	Skipped []Skip

	// Ambiguous are literal tokens containing braces that are not a
	// well-formed reference. They are also present in Tokens.
	Ambiguous []token.Token
}

// Merge appends other onto r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Tokens = append(r.Tokens, other.Tokens...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.Ambiguous = append(r.Ambiguous, other.Ambiguous...)
}
