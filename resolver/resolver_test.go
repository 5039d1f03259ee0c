/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/schema"
	"bennypowers.dev/stratum/testutil"
	"bennypowers.dev/stratum/token"
)

func literal(layer token.Layer, path, value string, typ token.Type) token.Token {
	return token.Token{
		Path:        path,
		Layer:       layer,
		Type:        typ,
		Value:       value,
		CSSVariable: token.CSSVariableName(layer, path),
		Status:      token.StatusLiteral,
	}
}

func ref(layer token.Layer, path, target string) token.Token {
	raw := token.FormatReference(target)
	return token.Token{
		Path:        path,
		Layer:       layer,
		Value:       raw,
		Reference:   raw,
		CSSVariable: token.CSSVariableName(layer, path),
		Status:      token.StatusPending,
	}
}

// brandTokens is the Primitive → Semantic → Component set used throughout.
func brandTokens() []token.Token {
	return []token.Token{
		literal(token.Primitives, "Color.Emerald.400", "#34d399", token.TypeColor),
		ref(token.Semantic, "Color.Brand.Default", "Color.Emerald.400"),
		ref(token.Components, "Button.Background.Default", "Color.Brand.Default"),
	}
}

func find(t *testing.T, tokens []token.Token, path string) token.Token {
	t.Helper()
	for _, tok := range tokens {
		if tok.Path == path {
			return tok
		}
	}
	t.Fatalf("no token %s", path)
	return token.Token{}
}

func TestResolveOne_SemanticToPrimitive(t *testing.T) {
	tokens := brandTokens()
	r := resolver.New(tokens)

	res := r.ResolveOne(tokens[1])
	require.NoError(t, res.Err)
	assert.Equal(t, "#34d399", res.Value)
	assert.Equal(t, token.StatusResolved, res.Status)
	assert.Equal(t, token.TypeColor, res.Type, "type comes from the chain when undeclared")

	chain := r.BuildReferenceChain(tokens[1])
	require.Equal(t, 2, chain.Len())
	assert.Equal(t, "Color.Brand.Default", chain.Steps[0].Path)
	assert.Equal(t, "{Color.Emerald.400}", chain.Steps[0].Value)
	v, ok := chain.Value()
	assert.True(t, ok)
	assert.Equal(t, "#34d399", v)
}

func TestResolveOne_ComponentChain(t *testing.T) {
	tokens := brandTokens()
	r := resolver.New(tokens)

	res := r.ResolveOne(tokens[2])
	assert.Equal(t, "#34d399", res.Value)

	chain := r.BuildReferenceChain(tokens[2])
	require.Equal(t, 3, chain.Len())
	assert.Equal(t, tokens[2].Path, chain.Steps[0].Path)
	assert.Equal(t, []token.Layer{token.Components, token.Semantic, token.Primitives}, chain.Layers())
	assert.True(t, chain.Complete())
	assert.Equal(t, res.Value, chain.Last().Value)
	assert.Equal(t, token.StatusResolved, chain.Status)
}

func TestResolveOne_Unresolved(t *testing.T) {
	missing := ref(token.Semantic, "Color.Broken", "Color.Nonexistent.500")
	r := resolver.New([]token.Token{missing})

	res := r.ResolveOne(missing)
	assert.Equal(t, token.StatusUnresolved, res.Status)
	assert.Equal(t, "{Color.Nonexistent.500}", res.Value)
	assert.True(t, errors.Is(res.Err, schema.ErrUnresolvedReference))
	assert.False(t, errors.Is(res.Err, schema.ErrCircularReference))

	var ue *resolver.UnresolvedError
	require.True(t, errors.As(res.Err, &ue))
	assert.Equal(t, "{Color.Nonexistent.500}", ue.Reference)

	chain := r.BuildReferenceChain(missing)
	require.Equal(t, 1, chain.Len())
	assert.True(t, chain.Last().Broken)
	assert.False(t, chain.Complete())
}

func TestResolveOne_BreakDownTheChain(t *testing.T) {
	tokens := []token.Token{
		ref(token.Components, "Card.Border", "Color.Border"),
		ref(token.Semantic, "Color.Border", "Color.Gone"),
	}
	res := resolver.New(tokens).ResolveOne(tokens[0])
	assert.Equal(t, token.StatusUnresolved, res.Status)
	assert.Equal(t, "{Color.Border}", res.Value, "the token keeps its own reference")
	var ue *resolver.UnresolvedError
	require.True(t, errors.As(res.Err, &ue))
	assert.Equal(t, "{Color.Gone}", ue.Reference)
}

func TestResolveOne_Cycle(t *testing.T) {
	x := ref(token.Semantic, "X", "Y")
	y := ref(token.Semantic, "Y", "X")
	r := resolver.New([]token.Token{x, y})

	done := make(chan struct{})
	go func() {
		defer close(done)

		rx := r.ResolveOne(x)
		assert.Equal(t, token.StatusCyclic, rx.Status)
		assert.Equal(t, []string{"X", "Y"}, rx.Cycle)
		assert.Equal(t, "{Y}", rx.Value)
		assert.True(t, errors.Is(rx.Err, schema.ErrCircularReference))
		assert.False(t, errors.Is(rx.Err, schema.ErrUnresolvedReference))

		ry := r.ResolveOne(y)
		assert.Equal(t, token.StatusCyclic, ry.Status)
		assert.Equal(t, []string{"Y", "X"}, ry.Cycle)

		var ce *resolver.CycleError
		require.True(t, errors.As(ry.Err, &ce))
		assert.Contains(t, ce.Error(), "Y → X → Y")
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("resolution did not terminate")
	}
}

func TestResolveOne_SelfReference(t *testing.T) {
	self := ref(token.Semantic, "Color.Self", "Color.Self")
	res := resolver.New([]token.Token{self}).ResolveOne(self)
	assert.Equal(t, token.StatusCyclic, res.Status)
	assert.Equal(t, []string{"Color.Self"}, res.Cycle)
}

func TestResolveAll_OnlyLoopIsCyclic(t *testing.T) {
	tokens := []token.Token{
		ref(token.Semantic, "A", "B"),
		ref(token.Semantic, "B", "A"),
		ref(token.Components, "Entry", "A"),
		literal(token.Primitives, "Fine", "1px", token.TypeNumber),
	}
	out := resolver.ResolveAll(tokens)
	require.Len(t, out, 4)

	assert.Equal(t, token.StatusCyclic, out[0].Status)
	assert.Equal(t, token.StatusCyclic, out[1].Status)
	assert.Equal(t, token.StatusUnresolved, out[2].Status, "reaching a loop is not being part of it")
	assert.Empty(t, out[2].Cycle)
	assert.Equal(t, "{A}", out[2].Value)
	assert.Equal(t, token.StatusLiteral, out[3].Status)
	assert.Equal(t, "1px", out[3].Value)

	chain := resolver.New(tokens).BuildReferenceChain(tokens[2])
	assert.Equal(t, []string{"A", "B"}, chain.Cycle)
	assert.Equal(t, token.StatusUnresolved, chain.Status)
	assert.True(t, chain.Last().Cyclic)
	assert.Equal(t, "A", chain.Last().Path)
	assert.True(t, errors.Is(chain.Err, schema.ErrCircularReference))
}

func TestResolveAll_DoesNotMutateInput(t *testing.T) {
	tokens := brandTokens()
	before := token.CloneAll(tokens)
	_ = resolver.ResolveAll(tokens)
	assert.Equal(t, before, tokens)
}

func TestResolveAll_ResolvedShape(t *testing.T) {
	out := resolver.ResolveAll(brandTokens())
	button := out[2]
	assert.Equal(t, "#34d399", button.Value)
	assert.Empty(t, button.Reference)
	assert.Equal(t, "{Color.Brand.Default}", button.Alias)
	assert.Equal(t, token.StatusResolved, button.Status)
	assert.False(t, button.IsReference())
}

func TestResolveAll_Idempotent(t *testing.T) {
	sets := map[string][]token.Token{
		"brand": brandTokens(),
		"broken": {
			ref(token.Semantic, "A", "B"),
			ref(token.Semantic, "B", "A"),
			ref(token.Components, "C", "A"),
			ref(token.Components, "D", "Nope"),
		},
		"fixture": testutil.ProjectTokens(t),
	}
	for name, tokens := range sets {
		t.Run(name, func(t *testing.T) {
			once := resolver.ResolveAll(tokens)
			twice := resolver.ResolveAll(once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestResolveAll_Fixture(t *testing.T) {
	out := resolver.ResolveAll(testutil.ProjectTokens(t), resolver.WithPreferredMode(token.ModeDark))
	for _, tok := range out {
		assert.False(t, tok.Status.Broken(), "%s is %s", tok.Key(), tok.Status)
		assert.False(t, tok.IsReference(), "%s still symbolic", tok.Key())
	}

	// Mode-less components follow the preferred mode.
	hover := find(t, out, "Button.Background.Hover")
	assert.Equal(t, "#34d399", hover.Value)

	// Dark semantic tokens stay in their own mode.
	for _, tok := range out {
		if tok.Path == "Color.Text" && tok.Layer == token.Semantic {
			switch tok.Mode {
			case token.ModeLight:
				assert.Equal(t, "#0f172a", tok.Value)
			case token.ModeDark:
				assert.Equal(t, "#f8fafc", tok.Value)
			}
		}
	}

	assert.Equal(t, "Inter, system-ui, sans-serif", find(t, out, "Font Family.Sans").Value)
	assert.Equal(t, token.TypeNumber, find(t, out, "Text.Body Size").Type)
}

func TestResolveAll_ConcurrentCalls(t *testing.T) {
	tokens := testutil.ProjectTokens(t)
	want := resolver.ResolveAll(tokens)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, resolver.ResolveAll(tokens))
		}()
	}
	wg.Wait()
}

func TestTarget_Precedence(t *testing.T) {
	primitive := literal(token.Primitives, "Color.Brand", "#000000", token.TypeColor)
	light := literal(token.Semantic, "Color.Brand", "#111111", token.TypeColor)
	light.Mode = token.ModeLight
	dark := literal(token.Semantic, "Color.Brand", "#222222", token.TypeColor)
	dark.Mode = token.ModeDark
	tokens := []token.Token{primitive, light, dark}

	parsed := func(s string) token.Reference {
		r, ok := token.ParseReference(s)
		require.True(t, ok)
		return r
	}

	t.Run("flow targets nearest first", func(t *testing.T) {
		ix := resolver.NewIndex(tokens)
		got, ok := ix.Target(token.Token{Layer: token.Components}, parsed("{Color.Brand}"))
		require.True(t, ok)
		assert.Equal(t, token.Semantic, got.Layer)
		assert.Equal(t, token.ModeLight, got.Mode, "first registered variant")
	})

	t.Run("source mode wins", func(t *testing.T) {
		ix := resolver.NewIndex(tokens, resolver.WithPreferredMode(token.ModeLight))
		got, _ := ix.Target(token.Token{Layer: token.Components, Mode: token.ModeDark}, parsed("{Color.Brand}"))
		assert.Equal(t, "#222222", got.Value)
	})

	t.Run("preferred mode", func(t *testing.T) {
		ix := resolver.NewIndex(tokens, resolver.WithPreferredMode(token.ModeDark))
		got, _ := ix.Target(token.Token{Layer: token.Components}, parsed("{Color.Brand}"))
		assert.Equal(t, "#222222", got.Value)
	})

	t.Run("qualified layer", func(t *testing.T) {
		ix := resolver.NewIndex(tokens)
		got, ok := ix.Target(token.Token{Layer: token.Components}, parsed("{primitives:Color.Brand}"))
		require.True(t, ok)
		assert.Equal(t, "#000000", got.Value)

		_, ok = ix.Target(token.Token{Layer: token.Components}, parsed("{typography:Color.Brand}"))
		assert.False(t, ok)
	})

	t.Run("semantic prefers primitives over itself", func(t *testing.T) {
		ix := resolver.NewIndex(tokens)
		got, _ := ix.Target(token.Token{Layer: token.Semantic}, parsed("{Color.Brand}"))
		assert.Equal(t, token.Primitives, got.Layer)
	})
}

func TestIndex_ByCSSVariable(t *testing.T) {
	tokens := testutil.ProjectTokens(t)
	ix := resolver.NewIndex(tokens)

	got, ok := ix.ByCSSVariable("--semantic-color-surface", token.ModeDark)
	require.True(t, ok)
	assert.Equal(t, token.ModeDark, got.Mode)

	got, ok = ix.ByCSSVariable("--primitives-color-white", token.ModeDark)
	require.True(t, ok, "mode-less fallback")
	assert.Equal(t, "#ffffff", got.Value)

	_, ok = ix.ByCSSVariable("--wp--custom--block--gap", "")
	assert.True(t, ok, "WordPress names are indexed too")

	_, ok = ix.ByCSSVariable("--nope", "")
	assert.False(t, ok)
}

func TestDependents_Direct(t *testing.T) {
	tokens := brandTokens()

	got := resolver.Dependents(tokens, "Color.Emerald.400")
	require.Len(t, got, 1)
	assert.Equal(t, "Color.Brand.Default", got[0].Path)

	// Resolved sets still answer through Alias.
	got = resolver.Dependents(resolver.ResolveAll(tokens), "Color.Brand.Default")
	require.Len(t, got, 1)
	assert.Equal(t, "Button.Background.Default", got[0].Path)

	assert.Empty(t, resolver.Dependents(tokens, "Button.Background.Default"))
}

func TestDependents_FixtureExcludesTransitive(t *testing.T) {
	got := resolver.Dependents(testutil.ProjectTokens(t), "Color.Emerald.400")
	var paths []string
	for _, tok := range got {
		paths = append(paths, tok.Path)
	}
	assert.Contains(t, paths, "Color.Brand.Default")
	assert.NotContains(t, paths, "Button.Background.Default")
}

func TestDependencies(t *testing.T) {
	tokens := brandTokens()
	got := resolver.Dependencies(tokens, "Button.Background.Default")
	require.Len(t, got, 2)
	assert.Equal(t, "Color.Brand.Default", got[0].Path)
	assert.Equal(t, "Color.Emerald.400", got[1].Path)

	assert.Empty(t, resolver.Dependencies(tokens, "Color.Emerald.400"))
	assert.Nil(t, resolver.Dependencies(tokens, "Nope"))

	loop := []token.Token{ref(token.Semantic, "A", "B"), ref(token.Semantic, "B", "A")}
	got = resolver.Dependencies(loop, "A")
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Path)
}

func TestBuildReferenceChain_ResolvedSet(t *testing.T) {
	out := resolver.ResolveAll(brandTokens())
	chain := resolver.New(out).BuildReferenceChain(out[2])
	require.Equal(t, 3, chain.Len())
	assert.Equal(t, "{Color.Brand.Default}", chain.Steps[0].Value)
	assert.Equal(t, "#34d399", chain.Last().Value)
}

func TestBuildReferenceChain_Literal(t *testing.T) {
	tokens := brandTokens()
	chain := resolver.New(tokens).BuildReferenceChain(tokens[0])
	require.Equal(t, 1, chain.Len())
	assert.Equal(t, token.StatusLiteral, chain.Status)
	assert.True(t, chain.Complete())
}
