/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"fmt"
	"strings"

	"bennypowers.dev/stratum/schema"
)

// Layer is the origin layer of a token.
// The numeric order is the fixed parse order used by ParseAllLayers.
type Layer int

const (
	// Primitives holds raw palette and scale values. Primitives reference nothing.
	Primitives Layer = iota

	// Typography holds font families, sizes, weights and line heights.
	Typography

	// Semantic maps intent (brand, surface, text) onto primitives.
	Semantic

	// Components holds per-component decisions built on semantic tokens.
	Components

	// Greenshift holds WordPress block tokens exposed as --wp--custom-- variables.
	Greenshift
)

// Layers lists every layer in parse order.
var Layers = []Layer{Primitives, Typography, Semantic, Components, Greenshift}

// String returns the display name of the layer.
func (l Layer) String() string {
	switch l {
	case Primitives:
		return "Primitives"
	case Typography:
		return "Typography"
	case Semantic:
		return "Semantic"
	case Components:
		return "Components"
	case Greenshift:
		return "Greenshift"
	default:
		return fmt.Sprintf("Layer(%d)", int(l))
	}
}

// Slug returns the fixed lower-case prefix used in CSS variable names.
func (l Layer) Slug() string {
	return strings.ToLower(l.String())
}

// Tier returns the position of the layer in the reference flow.
// Primitives and Typography share the base tier.
func (l Layer) Tier() int {
	switch l {
	case Primitives, Typography:
		return 0
	case Semantic:
		return 1
	default:
		return 2
	}
}

// CanReference reports whether a token in l may reference a token in target.
// Same-layer aliases are allowed everywhere except Primitives.
func (l Layer) CanReference(target Layer) bool {
	if l == target {
		return l != Primitives
	}
	for _, t := range l.Targets() {
		if t == target {
			return true
		}
	}
	return false
}

// Targets returns the lower layers l may reference, nearest first.
func (l Layer) Targets() []Layer {
	switch l {
	case Components, Greenshift:
		return []Layer{Semantic, Primitives, Typography}
	case Semantic:
		return []Layer{Primitives, Typography}
	case Typography:
		return []Layer{Primitives}
	default:
		return nil
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Layer) MarshalText() ([]byte, error) {
	return []byte(l.Slug()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layer) UnmarshalText(text []byte) error {
	parsed, err := ParseLayer(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLayer parses a layer name or slug, case-insensitively.
func ParseLayer(s string) (Layer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primitives", "primitive":
		return Primitives, nil
	case "typography":
		return Typography, nil
	case "semantic":
		return Semantic, nil
	case "components", "component":
		return Components, nil
	case "greenshift", "wordpress", "wp":
		return Greenshift, nil
	default:
		return 0, fmt.Errorf("%w: %q", schema.ErrUnknownLayer, s)
	}
}
