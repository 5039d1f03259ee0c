/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package json_test

import (
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/convert/formatter/json"
	"bennypowers.dev/stratum/token"
)

func TestFormat_NestedTree(t *testing.T) {
	tokens := []token.Token{
		{Layer: token.Primitives, Path: "Color.Emerald.400", Type: token.TypeColor, CSSVariable: "--primitives-color-emerald-400", Value: "#34d399", Status: token.StatusLiteral},
		{Layer: token.Semantic, Path: "Color.Brand.Default", Mode: token.ModeDark, Type: token.TypeColor, CSSVariable: "--semantic-color-brand-default", Value: "#34d399", Alias: "{Color.Emerald.400}", Status: token.StatusResolved},
		{Layer: token.Semantic, Path: "Color.Missing", Type: token.TypeString, CSSVariable: "--semantic-color-missing", Value: "{Color.Nope}", Status: token.StatusUnresolved},
	}

	out, err := json.New().Format(tokens, formatter.Options{})
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, gojson.Unmarshal(out, &tree))

	emerald := dig(t, tree, "primitives", "Color", "Emerald", "400")
	assert.Equal(t, "#34d399", emerald["value"])
	assert.Equal(t, "color", emerald["type"])
	assert.Equal(t, "--primitives-color-emerald-400", emerald["cssVariable"])
	assert.NotContains(t, emerald, "status")

	brand := dig(t, tree, "semantic", "Dark", "Color", "Brand", "Default")
	assert.Equal(t, "{Color.Emerald.400}", brand["alias"])

	missing := dig(t, tree, "semantic", "Color", "Missing")
	assert.Equal(t, "unresolved", missing["status"])
}

func dig(t *testing.T, tree map[string]any, keys ...string) map[string]any {
	t.Helper()
	cur := tree
	for _, k := range keys {
		next, ok := cur[k].(map[string]any)
		if !ok {
			t.Fatalf("missing %q in %v", k, keys)
		}
		cur = next
	}
	return cur
}
