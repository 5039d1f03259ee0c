/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"fmt"
	"strings"

	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/convert/formatter/css"
	"bennypowers.dev/stratum/convert/formatter/figma"
	"bennypowers.dev/stratum/convert/formatter/flat"
	"bennypowers.dev/stratum/convert/formatter/json"
	"bennypowers.dev/stratum/convert/formatter/wordpress"
	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/schema"
	"bennypowers.dev/stratum/token"
)

// Format represents an output format for token serialization.
type Format string

const (
	// FormatCSS outputs CSS custom properties, one block per mode.
	FormatCSS Format = "css"

	// FormatJSON outputs a nested JSON tree grouped by layer and mode.
	FormatJSON Format = "json"

	// FormatFlat outputs flat CSS variable to value JSON.
	FormatFlat Format = "flat"

	// FormatFigma outputs Figma variables JSON.
	FormatFigma Format = "figma"

	// FormatWordPress outputs a WordPress theme.json document.
	FormatWordPress Format = "wordpress"
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatCSS),
		string(FormatJSON),
		string(FormatFlat),
		string(FormatFigma),
		string(FormatWordPress),
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "css", "":
		return FormatCSS, nil
	case "json", "tree":
		return FormatJSON, nil
	case "flat", "flat-json":
		return FormatFlat, nil
	case "figma":
		return FormatFigma, nil
	case "wordpress", "wp", "theme.json":
		return FormatWordPress, nil
	default:
		return "", fmt.Errorf("%w: %s (valid: %s)", schema.ErrUnknownFormat, s, strings.Join(ValidFormats(), ", "))
	}
}

// New returns the formatter for a format.
func New(format Format) (formatter.Formatter, error) {
	switch format {
	case FormatCSS:
		return css.New(), nil
	case FormatJSON:
		return json.New(), nil
	case FormatFlat:
		return flat.New(), nil
	case FormatFigma:
		return figma.New(), nil
	case FormatWordPress:
		return wordpress.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", schema.ErrUnknownFormat, format)
	}
}

// FormatTokens resolves tokens and converts them to the given format.
// Input tokens are not modified.
func FormatTokens(tokens []token.Token, format Format, opts Options) ([]byte, error) {
	f, err := New(format)
	if err != nil {
		return nil, err
	}
	resolved := resolver.ResolveAll(tokens, resolver.WithPreferredMode(opts.PreferredMode))
	return f.Format(resolved, opts.formatterOptions())
}
