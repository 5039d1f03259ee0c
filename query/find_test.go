/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/schema"
	"bennypowers.dev/stratum/testutil"
	"bennypowers.dev/stratum/token"
)

func TestFind(t *testing.T) {
	tokens := testutil.ProjectTokens(t)

	tests := []struct {
		name      string
		sel       Selector
		preferred token.Mode
		wantLayer token.Layer
		wantMode  token.Mode
	}{
		{"mode-less primitive", Selector{Path: "Color.White"}, token.ModeLight, token.Primitives, ""},
		{"preferred mode wins", Selector{Path: "Color.Surface"}, token.ModeDark, token.Semantic, token.ModeDark},
		{"explicit mode", Selector{Path: "Color.Surface", Mode: "light"}, token.ModeDark, token.Semantic, token.ModeLight},
		{"explicit layer", Selector{Path: "Color.White", Layer: "primitives"}, "", token.Primitives, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(tokens, tt.sel, tt.preferred)
			require.NoError(t, err)
			assert.Equal(t, tt.sel.Path, got.Path)
			assert.Equal(t, tt.wantLayer, got.Layer)
			assert.Equal(t, tt.wantMode, got.Mode)
		})
	}
}

func TestFind_Errors(t *testing.T) {
	tokens := testutil.ProjectTokens(t)

	_, err := Find(tokens, Selector{Path: "Color.Nope", Layer: "semantic", Mode: "Dark"}, "")
	require.Error(t, err)
	assert.Equal(t, "no token semantic:Color.Nope[Dark]", err.Error())

	_, err = Find(tokens, Selector{Path: "Color.White", Layer: "colors"}, "")
	assert.True(t, errors.Is(err, schema.ErrUnknownLayer))
}
