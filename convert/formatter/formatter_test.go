/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package formatter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bennypowers.dev/stratum/convert/formatter"
	"bennypowers.dev/stratum/token"
)

func TestFormatHeader_Empty(t *testing.T) {
	result := formatter.FormatHeader("", formatter.CStyleComments)
	if result != "" {
		t.Errorf("expected empty string for empty header, got %q", result)
	}
}

func TestFormatHeader_MultiLine_CStyle(t *testing.T) {
	result := formatter.FormatHeader("Copyright 2026\nMIT License", formatter.CStyleComments)
	if !strings.HasPrefix(result, "/*\n") {
		t.Error("expected C-style block comment start")
	}
	if !strings.Contains(result, " * Copyright 2026\n") {
		t.Error("expected line with asterisk prefix")
	}
	if !strings.Contains(result, " * MIT License\n") {
		t.Error("expected second line with asterisk prefix")
	}
	if !strings.HasSuffix(result, "*/\n\n") {
		t.Error("expected block comment end")
	}
}

func TestFormatHeader_TrailingNewlines(t *testing.T) {
	result := formatter.FormatHeader("Generated\n\n\n", formatter.CStyleComments)
	expected := "/*\n * Generated\n */\n\n"
	if result != expected {
		t.Errorf("expected trailing newlines to be trimmed, got %q", result)
	}
}

func TestToKebabCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Color.Brand.Default", "color-brand-default"},
		{"fontSize", "font-size"},
		{"Font Size", "font-size"},
		{"already-kebab", "already-kebab"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatter.ToKebabCase(tt.input))
		})
	}
}

func TestToTitleCase(t *testing.T) {
	assert.Equal(t, "Color Brand Default", formatter.ToTitleCase("Color.Brand.Default"))
	assert.Equal(t, "Color Emerald 400", formatter.ToTitleCase("color.emerald.400"))
}

func TestModeSelector(t *testing.T) {
	var opts formatter.Options
	assert.Equal(t, ":root", opts.RootSelector())
	assert.Equal(t, "", opts.ModeSelector(""))
	assert.Equal(t, "", opts.ModeSelector(token.ModeLight))
	assert.Equal(t, `[data-theme="dark"]`, opts.ModeSelector(token.ModeDark))
	assert.Equal(t, "@media (max-width: 767px)", opts.ModeSelector(token.ModeMobile))
	assert.Equal(t, `[data-mode="high-contrast"]`, opts.ModeSelector("High Contrast"))

	opts.ModeSelectors = map[token.Mode]string{token.ModeLight: ".light"}
	assert.Equal(t, ".light", opts.ModeSelector(token.ModeLight))
}

func TestModes(t *testing.T) {
	tokens := []token.Token{
		{Path: "A", Mode: token.ModeDark},
		{Path: "B"},
		{Path: "C", Mode: token.ModeLight},
		{Path: "D", Mode: token.ModeDark},
	}
	assert.Equal(t, []token.Mode{"", token.ModeDark, token.ModeLight}, formatter.Modes(tokens))
}

func TestPickVariants(t *testing.T) {
	tokens := []token.Token{
		{Layer: token.Semantic, Path: "Color.Surface", Mode: token.ModeLight, Value: "#fff"},
		{Layer: token.Semantic, Path: "Color.Surface", Mode: token.ModeDark, Value: "#000"},
		{Layer: token.Semantic, Path: "Radius", Value: "4px"},
		{Layer: token.Primitives, Path: "Radius", Value: "2px"},
	}

	t.Run("preferred mode wins", func(t *testing.T) {
		got := formatter.PickVariants(tokens, token.ModeDark)
		assert.Len(t, got, 3)
		assert.Equal(t, "#000", got[0].Value)
	})

	t.Run("first seen without preference", func(t *testing.T) {
		got := formatter.PickVariants(tokens, "")
		assert.Len(t, got, 3)
		assert.Equal(t, "#fff", got[0].Value)
		assert.Equal(t, "2px", got[2].Value)
	})
}

func TestNest(t *testing.T) {
	tree := make(map[string]any)
	formatter.Nest(tree, []string{"spacing", "2"}, "8px")
	formatter.Nest(tree, []string{"spacing"}, "base")
	formatter.Nest(tree, []string{"spacing", "2", "half"}, "4px")

	spacing, ok := tree["spacing"].(map[string]any)
	if !ok {
		t.Fatalf("expected spacing group, got %T", tree["spacing"])
	}
	assert.Equal(t, "base", spacing[formatter.DefaultKey])
	two, ok := spacing["2"].(map[string]any)
	if !ok {
		t.Fatalf("expected spacing.2 group, got %T", spacing["2"])
	}
	assert.Equal(t, "8px", two[formatter.DefaultKey])
	assert.Equal(t, "4px", two["half"])
}
