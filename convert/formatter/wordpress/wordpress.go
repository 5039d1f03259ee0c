/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package wordpress provides WordPress theme.json formatting for design tokens.
package wordpress

import (
	"strings"

	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/token"
)

// SchemaURL is the theme.json schema written into the document.
const SchemaURL = "https://schemas.wp.org/trunk/theme.json"

// PaletteEntry is one color of settings.color.palette.
type PaletteEntry struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Formatter outputs a theme.json version 2 document.
type Formatter struct{}

// New creates a new WordPress formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format writes resolved color tokens to the palette and every Greenshift
// token to settings.custom, nested so that WordPress derives the token's
// --wp--custom-- variable. theme.json has no modes, so one variant per path
// is written; see formatter.PickVariants.
func (f *Formatter) Format(tokens []token.Token, opts formatter.Options) ([]byte, error) {
	picked := formatter.PickVariants(tokens, opts.PreferredMode)

	palette := []PaletteEntry{}
	seen := make(map[string]bool)
	custom := make(map[string]any)
	for _, t := range picked {
		if t.Status.Broken() {
			continue
		}
		if t.Type == token.TypeColor {
			slug := strings.TrimPrefix(t.CSSVariable, "--")
			if !seen[slug] {
				seen[slug] = true
				palette = append(palette, PaletteEntry{
					Slug:  slug,
					Name:  formatter.ToTitleCase(t.Path),
					Color: t.Value,
				})
			}
		}
		if t.Layer == token.Greenshift {
			var segments []string
			for _, seg := range t.Segments() {
				if k := token.KebabSegment(seg); k != "" {
					segments = append(segments, k)
				}
			}
			if len(segments) > 0 {
				formatter.Nest(custom, segments, t.Value)
			}
		}
	}

	settings := map[string]any{
		"color": map[string]any{"palette": palette},
	}
	if len(custom) > 0 {
		settings["custom"] = custom
	}
	return formatter.MarshalJSON(map[string]any{
		"$schema":  SchemaURL,
		"version":  2,
		"settings": settings,
	})
}
