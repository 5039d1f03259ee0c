/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package common provides shared utilities for token parsing.
package common

import "regexp"

// NumberPattern matches a numeric literal with an optional unit suffix:
// 16, -0.5, .25rem, 1.5em, 200ms, 50%.
var NumberPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:e[+-]?\d+)?(?:[a-zA-Z]{1,4}|%)?$`)

// ColorPrefixes are the literal prefixes that mark a color value.
var ColorPrefixes = []string{"#", "rgb(", "rgba(", "hsl(", "hsla(", "oklch("}
