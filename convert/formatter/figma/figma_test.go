/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figma_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/convert/formatter/figma"
	"bennypowers.dev/stratum/parser/common"
	"bennypowers.dev/stratum/token"
)

func TestBuild(t *testing.T) {
	tokens := []token.Token{
		{Layer: token.Semantic, Path: "Color.Surface", Mode: token.ModeLight, Type: token.TypeColor, CSSVariable: "--semantic-color-surface", Value: "#ffffff", Status: token.StatusResolved},
		{Layer: token.Semantic, Path: "Color.Surface", Mode: token.ModeDark, Type: token.TypeColor, CSSVariable: "--semantic-color-surface", Value: "rgba(0, 0, 0, 0.5)", Status: token.StatusResolved},
		{Layer: token.Semantic, Path: "Radius.Control", Type: token.TypeNumber, CSSVariable: "--semantic-radius-control", Value: "4px", Status: token.StatusResolved},
		{Layer: token.Semantic, Path: "Loop.A", Type: token.TypeString, CSSVariable: "--semantic-loop-a", Value: "{Loop.B}", Status: token.StatusCyclic},
		{Layer: token.Primitives, Path: "Font.Family", Type: token.TypeString, CSSVariable: "--primitives-font-family", Value: "Inter, sans-serif", Status: token.StatusLiteral},
	}

	doc := figma.Build(tokens)
	require.Len(t, doc.Collections, 2)

	prims := doc.Collections[0]
	assert.Equal(t, "Primitives", prims.Name)
	assert.Equal(t, []string{figma.DefaultMode}, prims.Modes)
	require.Len(t, prims.Variables, 1)
	assert.Equal(t, "Font/Family", prims.Variables[0].Name)
	assert.Equal(t, figma.TypeString, prims.Variables[0].ResolvedType)
	assert.Equal(t, "Inter, sans-serif", prims.Variables[0].ValuesByMode[figma.DefaultMode])

	sem := doc.Collections[1]
	assert.Equal(t, []string{"Light", "Dark"}, sem.Modes)
	require.Len(t, sem.Variables, 3)

	surface := sem.Variables[0]
	assert.Equal(t, figma.TypeColor, surface.ResolvedType)
	assert.Equal(t, "var(--semantic-color-surface)", surface.CodeSyntax["WEB"])
	assert.Equal(t, common.RGBA{R: 1, G: 1, B: 1, A: 1}, surface.ValuesByMode["Light"])
	assert.Equal(t, common.RGBA{R: 0, G: 0, B: 0, A: 0.5}, surface.ValuesByMode["Dark"])

	radius := sem.Variables[1]
	assert.Equal(t, figma.TypeFloat, radius.ResolvedType)
	assert.Equal(t, 4.0, radius.ValuesByMode["Light"])
	assert.Equal(t, 4.0, radius.ValuesByMode["Dark"], "mode-less values fill every mode")

	loop := sem.Variables[2]
	assert.Equal(t, figma.TypeString, loop.ResolvedType)
	assert.Equal(t, "cyclic", loop.Status)
	assert.Equal(t, "{Loop.B}", loop.ValuesByMode["Dark"])
}

func TestFormat_JSON(t *testing.T) {
	tokens := []token.Token{
		{Layer: token.Primitives, Path: "Spacing.4", Type: token.TypeNumber, CSSVariable: "--primitives-spacing-4", Value: "16px"},
	}
	out, err := figma.New().Format(tokens, formatter.Options{})
	require.NoError(t, err)

	var doc struct {
		Collections []struct {
			Name      string `json:"name"`
			Variables []struct {
				Name         string             `json:"name"`
				ResolvedType string             `json:"resolvedType"`
				ValuesByMode map[string]float64 `json:"valuesByMode"`
			} `json:"variables"`
		} `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Len(t, doc.Collections, 1)
	v := doc.Collections[0].Variables[0]
	assert.Equal(t, "Spacing/4", v.Name)
	assert.Equal(t, "FLOAT", v.ResolvedType)
	assert.Equal(t, 16.0, v.ValuesByMode["Default"])
}
