/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert resolves token sets and serializes them to output formats.
package convert

import (
	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/token"
)

// Options configures token serialization behavior.
type Options struct {
	// Header is written as a comment by formats that allow one.
	Header string

	// Selector is the CSS selector for mode-less tokens (default ":root").
	Selector string

	// ModeSelectors overrides the CSS selector or at-rule per mode.
	ModeSelectors map[token.Mode]string

	// WordPress also emits --wp--custom-- variables for Greenshift tokens.
	WordPress bool

	// PreferredMode breaks ties between mode variants during resolution and
	// picks the variant written by single-mode formats.
	PreferredMode token.Mode
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Selector:      ":root",
		WordPress:     true,
		PreferredMode: token.ModeLight,
	}
}

func (o Options) formatterOptions() formatter.Options {
	return formatter.Options{
		Header:        o.Header,
		Selector:      o.Selector,
		ModeSelectors: o.ModeSelectors,
		WordPress:     o.WordPress,
		PreferredMode: o.PreferredMode,
	}
}
