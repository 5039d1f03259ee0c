/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/convert"
	"bennypowers.dev/stratum/schema"
	"bennypowers.dev/stratum/testutil"
	"bennypowers.dev/stratum/token"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected convert.Format
		wantErr  bool
	}{
		{"css", convert.FormatCSS, false},
		{"", convert.FormatCSS, false},
		{"CSS", convert.FormatCSS, false},
		{"json", convert.FormatJSON, false},
		{"flat", convert.FormatFlat, false},
		{"flat-json", convert.FormatFlat, false},
		{"figma", convert.FormatFigma, false},
		{"wordpress", convert.FormatWordPress, false},
		{"wp", convert.FormatWordPress, false},
		{"scss", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := convert.ParseFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, schema.ErrUnknownFormat) {
					t.Errorf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestValidFormats_AllDispatch(t *testing.T) {
	for _, name := range convert.ValidFormats() {
		f, err := convert.ParseFormat(name)
		require.NoError(t, err)
		_, err = convert.New(f)
		assert.NoError(t, err, name)
	}
	_, err := convert.New("scss")
	assert.ErrorIs(t, err, schema.ErrUnknownFormat)
}

func TestFormatTokens_ResolvesFirst(t *testing.T) {
	tokens := []token.Token{
		{Layer: token.Primitives, Path: "Color.Emerald.400", Type: token.TypeColor, CSSVariable: "--primitives-color-emerald-400", Value: "#34d399", Status: token.StatusLiteral},
		{Layer: token.Semantic, Path: "Color.Brand", CSSVariable: "--semantic-color-brand", Value: "{Color.Emerald.400}", Reference: "{Color.Emerald.400}", Status: token.StatusPending},
	}

	out, err := convert.FormatTokens(tokens, convert.FormatFlat, convert.DefaultOptions())
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "#34d399", got["--semantic-color-brand"])

	assert.Equal(t, token.StatusPending, tokens[1].Status, "input must not be modified")
	assert.Equal(t, "{Color.Emerald.400}", tokens[1].Value)
}

func TestFormatTokens_Project(t *testing.T) {
	tokens := testutil.ProjectTokens(t)
	for _, name := range convert.ValidFormats() {
		t.Run(name, func(t *testing.T) {
			out, err := convert.FormatTokens(tokens, convert.Format(name), convert.DefaultOptions())
			require.NoError(t, err)
			assert.NotEmpty(t, out)
			assert.False(t, strings.Contains(string(out), "unresolved"), "project references should all resolve")
		})
	}
}

func TestFormatTokens_CSSWordPress(t *testing.T) {
	out, err := convert.FormatTokens(testutil.ProjectTokens(t), convert.FormatCSS, convert.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(out), "--wp--custom--block--gap: 16px;")
}
