/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package common

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// AlphaThreshold is the value below which alpha is kept in output.
// Values >= 0.999 are treated as fully opaque.
const AlphaThreshold = 0.999

// RGBA is a color with channels in the 0-1 range.
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ParseColor parses any CSS color the browser would accept.
func ParseColor(value string) (RGBA, error) {
	c, err := csscolorparser.Parse(strings.TrimSpace(value))
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid color %q: %w", value, err)
	}
	return RGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// Opaque reports whether the alpha channel can be dropped.
func (c RGBA) Opaque() bool {
	return c.A >= AlphaThreshold
}

// Hex returns the #rrggbb form, with an alpha byte appended when the color
// is translucent.
func (c RGBA) Hex() string {
	hex := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
	if c.Opaque() {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, int(c.A*255+0.5))
}

// NormalizeColor rewrites a color literal to lower-case hex. Values that do
// not parse are returned unchanged.
func NormalizeColor(value string) string {
	c, err := ParseColor(value)
	if err != nil {
		return value
	}
	return c.Hex()
}
