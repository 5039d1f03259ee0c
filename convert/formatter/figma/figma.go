/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package figma provides Figma variables JSON formatting for design tokens.
package figma

import (
	"math"
	"strings"

	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/parser/common"
	"bennypowers.dev/stratum/token"
)

// DefaultMode names the single mode of a collection without mode variants.
const DefaultMode = "Default"

// Resolved types of Figma variables.
const (
	TypeColor  = "COLOR"
	TypeFloat  = "FLOAT"
	TypeString = "STRING"
)

// Document is the exported Figma variables file.
type Document struct {
	Collections []Collection `json:"collections"`
}

// Collection holds the variables of one layer.
type Collection struct {
	Name      string     `json:"name"`
	Modes     []string   `json:"modes"`
	Variables []Variable `json:"variables"`
}

// Variable is one token path with a value per mode.
type Variable struct {
	Name         string            `json:"name"`
	ResolvedType string            `json:"resolvedType"`
	Description  string            `json:"description,omitempty"`
	ValuesByMode map[string]any    `json:"valuesByMode"`
	CodeSyntax   map[string]string `json:"codeSyntax"`
	Status       string            `json:"status,omitempty"`
}

// Formatter outputs Figma variables JSON.
type Formatter struct{}

// New creates a new Figma formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format converts tokens to Figma variables. Each layer is a collection whose
// modes are the modes its tokens carry; mode-less tokens fill every mode.
func (f *Formatter) Format(tokens []token.Token, opts formatter.Options) ([]byte, error) {
	return formatter.MarshalJSON(Build(tokens))
}

// Build groups tokens into collections in layer order.
func Build(tokens []token.Token) Document {
	doc := Document{Collections: []Collection{}}
	for _, layer := range token.Layers {
		var inLayer []token.Token
		for _, t := range tokens {
			if t.Layer == layer {
				inLayer = append(inLayer, t)
			}
		}
		if len(inLayer) == 0 {
			continue
		}
		doc.Collections = append(doc.Collections, collection(layer, inLayer))
	}
	return doc
}

func collection(layer token.Layer, tokens []token.Token) Collection {
	var modes []string
	for _, m := range formatter.Modes(tokens) {
		if m != "" {
			modes = append(modes, string(m))
		}
	}
	if len(modes) == 0 {
		modes = []string{DefaultMode}
	}

	c := Collection{Name: layer.String(), Modes: modes}
	index := make(map[string]int)
	for _, t := range tokens {
		i, ok := index[t.Path]
		if !ok {
			i = len(c.Variables)
			index[t.Path] = i
			c.Variables = append(c.Variables, Variable{
				Name:         strings.ReplaceAll(t.Path, ".", "/"),
				ResolvedType: resolvedType(t),
				Description:  t.Description,
				ValuesByMode: make(map[string]any, len(modes)),
				CodeSyntax:   map[string]string{"WEB": "var(" + t.CSSVariable + ")"},
			})
		}
		v := &c.Variables[i]
		if t.Status.Broken() {
			v.ResolvedType = TypeString
			v.Status = t.Status.String()
		}
		value := convert(t, v.ResolvedType)
		if t.Mode == "" {
			// Mode-less values fill modes no variant has claimed.
			for _, m := range modes {
				if _, set := v.ValuesByMode[m]; !set {
					v.ValuesByMode[m] = value
				}
			}
			continue
		}
		v.ValuesByMode[string(t.Mode)] = value
	}
	return c
}

func resolvedType(t token.Token) string {
	if t.Status.Broken() {
		return TypeString
	}
	switch t.Type {
	case token.TypeColor:
		if _, err := common.ParseColor(t.Value); err == nil {
			return TypeColor
		}
	case token.TypeNumber:
		if _, _, ok := common.ParseNumber(t.Value); ok {
			return TypeFloat
		}
	}
	return TypeString
}

func convert(t token.Token, resolved string) any {
	switch resolved {
	case TypeColor:
		c, err := common.ParseColor(t.Value)
		if err != nil {
			return t.Value
		}
		return common.RGBA{R: round(c.R), G: round(c.G), B: round(c.B), A: round(c.A)}
	case TypeFloat:
		n, _, ok := common.ParseNumber(t.Value)
		if !ok {
			return t.Value
		}
		return n
	default:
		return t.Value
	}
}

func round(f float64) float64 {
	return math.Round(f*10000) / 10000
}
