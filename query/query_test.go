/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/query"
	"bennypowers.dev/stratum/testutil"
	"bennypowers.dev/stratum/token"
)

func TestRun(t *testing.T) {
	tokens := testutil.ProjectTokens(t)

	tests := []struct {
		name   string
		filter query.Filter
		check  func(t *testing.T, r query.Result)
	}{
		{
			name:   "no filter keeps everything",
			filter: query.Filter{},
			check: func(t *testing.T, r query.Result) {
				assert.Len(t, r.Tokens, len(tokens))
			},
		},
		{
			name:   "layer and prefix",
			filter: query.Filter{Layers: []token.Layer{token.Primitives}, Prefix: "Color.Emerald"},
			check: func(t *testing.T, r query.Result) {
				require.Len(t, r.Tokens, 2)
				assert.Equal(t, "Color.Emerald.400", r.Tokens[0].Path)
				assert.Equal(t, "Color.Emerald.600", r.Tokens[1].Path)
			},
		},
		{
			name:   "mode",
			filter: query.Filter{Layers: []token.Layer{token.Semantic}, Modes: []token.Mode{token.ModeDark}},
			check: func(t *testing.T, r query.Result) {
				assert.NotEmpty(t, r.Tokens)
				for _, tok := range r.Tokens {
					assert.Equal(t, token.ModeDark, tok.Mode)
				}
				assert.Equal(t, []token.Mode{token.ModeDark}, r.Stats.Modes)
			},
		},
		{
			name:   "unresolved keeps references",
			filter: query.Filter{Layers: []token.Layer{token.Components}, Prefix: "Button.Padding"},
			check: func(t *testing.T, r query.Result) {
				require.Len(t, r.Tokens, 1)
				assert.Equal(t, "{Spacing.2}", r.Tokens[0].Reference)
				assert.Equal(t, token.StatusPending, r.Tokens[0].Status)
			},
		},
		{
			name:   "resolved crosses the filter boundary",
			filter: query.Filter{Layers: []token.Layer{token.Components}, Prefix: "Button.Padding", Resolve: true},
			check: func(t *testing.T, r query.Result) {
				require.Len(t, r.Tokens, 1)
				assert.Equal(t, "8px", r.Tokens[0].Value)
				assert.Empty(t, r.Tokens[0].Reference)
				assert.Equal(t, token.StatusResolved, r.Tokens[0].Status)
			},
		},
		{
			name:   "types match inherited types after resolving",
			filter: query.Filter{Layers: []token.Layer{token.Greenshift}, Types: []token.Type{token.TypeColor}, Resolve: true},
			check: func(t *testing.T, r query.Result) {
				assert.NotEmpty(t, r.Tokens)
				assert.Equal(t, []token.Type{token.TypeColor}, r.Stats.Types)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := query.Run(tokens, tt.filter)
			assert.Equal(t, len(r.Tokens), r.Stats.Count)
			tt.check(t, r)
		})
	}
}

func TestSummarize(t *testing.T) {
	s := query.Summarize([]token.Token{
		{Layer: token.Semantic, Type: token.TypeString, Mode: token.ModeLight},
		{Layer: token.Primitives, Type: token.TypeColor},
		{Layer: token.Semantic, Type: token.TypeColor, Mode: token.ModeDark},
	})
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, []token.Type{token.TypeColor, token.TypeString}, s.Types)
	assert.Equal(t, []token.Mode{"", token.ModeDark, token.ModeLight}, s.Modes)
	assert.Equal(t, []token.Layer{token.Primitives, token.Semantic}, s.Layers)
}
