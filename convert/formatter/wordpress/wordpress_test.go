/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package wordpress_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/convert/formatter/wordpress"
	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/testutil"
	"bennypowers.dev/stratum/token"
)

type themeJSON struct {
	Schema   string `json:"$schema"`
	Version  int    `json:"version"`
	Settings struct {
		Color struct {
			Palette []wordpress.PaletteEntry `json:"palette"`
		} `json:"color"`
		Custom map[string]any `json:"custom"`
	} `json:"settings"`
}

func TestFormat(t *testing.T) {
	tokens := []token.Token{
		{Layer: token.Primitives, Path: "Color.Emerald.400", Type: token.TypeColor, CSSVariable: "--primitives-color-emerald-400", Value: "#34d399"},
		{Layer: token.Semantic, Path: "Color.Surface", Mode: token.ModeLight, Type: token.TypeColor, CSSVariable: "--semantic-color-surface", Value: "#ffffff"},
		{Layer: token.Semantic, Path: "Color.Surface", Mode: token.ModeDark, Type: token.TypeColor, CSSVariable: "--semantic-color-surface", Value: "#0f172a"},
		{Layer: token.Semantic, Path: "Color.Missing", Type: token.TypeColor, CSSVariable: "--semantic-color-missing", Value: "{Color.Nope}", Status: token.StatusUnresolved},
		{Layer: token.Greenshift, Path: "Block.Gap", Type: token.TypeNumber, CSSVariable: "--greenshift-block-gap", Value: "16px"},
	}

	out, err := wordpress.New().Format(tokens, formatter.Options{PreferredMode: token.ModeDark})
	require.NoError(t, err)

	var doc themeJSON
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, wordpress.SchemaURL, doc.Schema)
	assert.Equal(t, 2, doc.Version)

	assert.Equal(t, []wordpress.PaletteEntry{
		{Slug: "primitives-color-emerald-400", Name: "Color Emerald 400", Color: "#34d399"},
		{Slug: "semantic-color-surface", Name: "Color Surface", Color: "#0f172a"},
	}, doc.Settings.Color.Palette)

	block, ok := doc.Settings.Custom["block"].(map[string]any)
	require.True(t, ok, "expected custom.block group")
	assert.Equal(t, "16px", block["gap"])
}

func TestFormat_Project(t *testing.T) {
	resolved := resolver.ResolveAll(testutil.ProjectTokens(t))
	out, err := wordpress.New().Format(resolved, formatter.Options{PreferredMode: token.ModeLight})
	require.NoError(t, err)

	var doc themeJSON
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.NotEmpty(t, doc.Settings.Color.Palette)
	button, ok := doc.Settings.Custom["button"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, button, "background")
}
