/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides the layered design token model.
package token

import (
	"fmt"
	"strings"
)

// Type is the declared value kind of a token.
type Type string

const (
	TypeColor  Type = "color"
	TypeNumber Type = "number"
	TypeString Type = "string"
)

// Status describes where a token stands in resolution.
type Status int

const (
	// StatusLiteral marks a token declared with a literal value.
	StatusLiteral Status = iota

	// StatusPending marks a reference that has not been resolved yet.
	StatusPending

	// StatusResolved marks a reference that was resolved to a literal.
	StatusResolved

	// StatusUnresolved marks a reference whose chain is broken.
	// Value keeps the original reference string.
	StatusUnresolved

	// StatusCyclic marks a token that participates in a reference cycle.
	StatusCyclic
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusLiteral:
		return "literal"
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	case StatusUnresolved:
		return "unresolved"
	case StatusCyclic:
		return "cyclic"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Broken reports whether the token could not be resolved to a literal.
func (s Status) Broken() bool {
	return s == StatusUnresolved || s == StatusCyclic
}

// Key identifies a token within a token set.
// Mode variants of the same path are distinct keys.
type Key struct {
	Layer Layer
	Path  string
	Mode  Mode
}

// String returns layer:path, with the mode appended in brackets when set.
func (k Key) String() string {
	s := k.Layer.Slug() + ":" + k.Path
	if k.Mode != "" {
		s += "[" + string(k.Mode) + "]"
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a single flattened design token.
type Token struct {
	// Path is the dot-delimited address, e.g. "Button.Background.Default".
	Path string `json:"path"`

	// Layer is the origin layer.
	Layer Layer `json:"layer"`

	// Mode is set for mode-specific variants.
	Mode Mode `json:"mode,omitempty"`

	// Type is the declared or inferred value kind.
	Type Type `json:"type"`

	// Value is the literal value, or the raw reference while unresolved.
	Value string `json:"value"`

	// CSSVariable is the generated custom property name.
	CSSVariable string `json:"cssVariable"`

	// WPVariable is the WordPress custom property name (Greenshift only).
	WPVariable string `json:"wpVariable,omitempty"`

	// Reference is the raw reference string while Value is still symbolic.
	Reference string `json:"reference,omitempty"`

	// Alias is the reference this token was resolved through.
	Alias string `json:"alias,omitempty"`

	// Status is the resolution state.
	Status Status `json:"status"`

	// Cycle lists the paths forming the loop for cyclic tokens.
	Cycle []string `json:"cycle,omitempty"`

	// Description is optional documentation from the source.
	Description string `json:"description,omitempty"`

	// Line is the 1-based source line of the leaf, 0 when unknown.
	Line int `json:"-"`
}

// Key returns the composite identity of the token.
func (t Token) Key() Key {
	return Key{Layer: t.Layer, Path: t.Path, Mode: t.Mode}
}

// IsReference reports whether Value is still symbolic.
func (t Token) IsReference() bool {
	return t.Reference != ""
}

// Segments splits the path on dots.
func (t Token) Segments() []string {
	return strings.Split(t.Path, ".")
}

// RefTarget returns the reference this token points at, whether it is still
// pending or was already resolved.
func (t Token) RefTarget() (Reference, bool) {
	raw := t.Reference
	if raw == "" {
		raw = t.Alias
	}
	if raw == "" {
		return Reference{}, false
	}
	return ParseReference(raw)
}

// Clone returns a copy that shares no slices with t.
func (t Token) Clone() Token {
	if t.Cycle != nil {
		t.Cycle = append([]string(nil), t.Cycle...)
	}
	return t
}

// CloneAll copies a token slice.
func CloneAll(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		out[i] = t.Clone()
	}
	return out
}
