/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package common

import (
	"strconv"
	"strings"

	"bennypowers.dev/stratum/token"
)

// declaredTypes maps declared type names, including DTCG names, onto the
// three value kinds tokens carry.
var declaredTypes = map[string]token.Type{
	"color":         token.TypeColor,
	"number":        token.TypeNumber,
	"float":         token.TypeNumber,
	"dimension":     token.TypeNumber,
	"duration":      token.TypeNumber,
	"fontweight":    token.TypeNumber,
	"lineheight":    token.TypeNumber,
	"letterspacing": token.TypeNumber,
	"spacing":       token.TypeNumber,
	"sizing":        token.TypeNumber,
	"borderradius":  token.TypeNumber,
	"borderwidth":   token.TypeNumber,
	"opacity":       token.TypeNumber,
	"string":        token.TypeString,
	"fontfamily":    token.TypeString,
	"cubicbezier":   token.TypeString,
	"text":          token.TypeString,
}

// NormalizeType maps a declared type onto a token type. Unknown names are
// reported with ok false.
func NormalizeType(declared string) (token.Type, bool) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(declared)))
	t, ok := declaredTypes[key]
	return t, ok
}

// InferType guesses the type of a literal from its shape.
func InferType(value string) token.Type {
	v := strings.TrimSpace(value)
	if IsColorLiteral(v) {
		return token.TypeColor
	}
	if NumberPattern.MatchString(v) {
		return token.TypeNumber
	}
	return token.TypeString
}

// ResolveType returns the declared type when it is known, otherwise the type
// inferred from the literal. References carry no literal shape, so an
// undeclared reference gets the empty type until resolution fills it in.
func ResolveType(declared, value string, isReference bool) token.Type {
	if declared != "" {
		if t, ok := NormalizeType(declared); ok {
			return t
		}
	}
	if isReference {
		return ""
	}
	return InferType(value)
}

// IsColorLiteral reports whether a value starts with one of ColorPrefixes.
func IsColorLiteral(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, p := range ColorPrefixes {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	return false
}

// ParseNumber splits a numeric literal into its value and unit suffix.
func ParseNumber(value string) (float64, string, bool) {
	v := strings.TrimSpace(value)
	if !NumberPattern.MatchString(v) {
		return 0, "", false
	}
	end := len(v)
	for end > 0 {
		c := v[end-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '%' {
			end--
			continue
		}
		break
	}
	n, err := strconv.ParseFloat(v[:end], 64)
	if err != nil {
		return 0, "", false
	}
	return n, v[end:], true
}
