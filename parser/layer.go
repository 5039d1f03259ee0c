/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"bennypowers.dev/stratum/internal/logger"
	"bennypowers.dev/stratum/parser/common"
	"bennypowers.dev/stratum/schema"
	"bennypowers.dev/stratum/token"
)

// LayerSource is one raw tree assigned to a layer.
type LayerSource struct {
	// Layer is the layer every token in Group belongs to.
	Layer token.Layer

	// Group is the decoded raw tree.
	Group *token.Group

	// Mode pins the whole tree to one mode, for per-mode files.
	Mode token.Mode

	// Modes are the modes the layer supports. Nil uses token.DefaultModes.
	Modes []token.Mode

	// Source names the file or specifier, for diagnostics.
	Source string
}

// ParseLayer flattens one raw tree into tokens of the given layer.
//
// With a mode, a top-level key naming that mode selects the subtree to parse;
// without such a key the whole tree is parsed and tagged with the mode.
// Without a mode, top-level keys naming a known mode are left out.
func ParseLayer(raw *token.Group, layer token.Layer, mode token.Mode) (*Result, error) {
	return parseLayer(raw, layer, mode, make(map[string]bool))
}

// parseLayer is ParseLayer with a caller-owned set of paths already taken
// in this layer and mode, so duplicates across sources are caught too.
func parseLayer(raw *token.Group, layer token.Layer, mode token.Mode, seen map[string]bool) (*Result, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: no tree for layer %s", schema.ErrNotATree, layer)
	}

	w := &walker{layer: layer, mode: mode, seen: seen, result: &Result{}}
	root, top := raw, true
	if sub, ok := raw.ModeGroup(mode); ok {
		root, top = sub, false
	}
	w.group(root, nil, top)
	return w.result, nil
}

// ParseAllLayers parses every source in fixed layer order. Sources of the
// same layer keep their relative order. Mode-less entries of a tree are
// parsed once, then each mode subtree the layer supports or the tree carries.
//
// A path is unique per layer and mode across all sources: a later source
// redefining it is reported in Skipped with schema.ErrDuplicatePath and the
// first definition is kept.
func ParseAllLayers(sources []LayerSource) (*Result, error) {
	ordered := slices.Clone(sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Layer < ordered[j].Layer
	})

	type slot struct {
		layer token.Layer
		mode  token.Mode
	}
	seen := make(map[slot]map[string]bool)

	all := &Result{}
	for _, src := range ordered {
		if src.Group == nil {
			return nil, fmt.Errorf("%s: %w", sourceName(src), schema.ErrNotATree)
		}
		before := len(all.Skipped)

		for _, mode := range passes(src) {
			taken := seen[slot{src.Layer, mode}]
			if taken == nil {
				taken = make(map[string]bool)
				seen[slot{src.Layer, mode}] = taken
			}
			res, err := parseLayer(src.Group, src.Layer, mode, taken)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", sourceName(src), err)
			}
			all.Merge(res)
		}

		for i := before; i < len(all.Skipped); i++ {
			all.Skipped[i].Source = src.Source
		}
		if n := len(all.Skipped) - before; n > 0 {
			logger.Warn("%s: skipped %d malformed token(s)", sourceName(src), n)
		}
	}
	logger.Debug("parsed %d tokens from %d source(s)", len(all.Tokens), len(sources))
	return all, nil
}

// passes returns the modes to call ParseLayer with for one source.
// The empty mode stands for the shared entries.
func passes(src LayerSource) []token.Mode {
	if src.Mode != "" {
		return []token.Mode{src.Mode}
	}
	g := src.Group
	if !g.HasModeSplit() {
		return []token.Mode{""}
	}

	var modes []token.Mode
	if g.HasShared() {
		modes = append(modes, "")
	}
	supported := src.Modes
	if supported == nil {
		supported = token.DefaultModes(src.Layer)
	}
	for _, m := range supported {
		if _, ok := g.ModeGroup(m); ok {
			modes = append(modes, m)
		}
	}
	// Mode subtrees the layer was not configured for are still parsed
	// rather than silently dropped.
	for _, m := range token.KnownModes {
		if _, ok := g.ModeGroup(m); ok && !slices.Contains(modes, m) {
			logger.Debug("%s: parsing unconfigured mode %s", sourceName(src), m)
			modes = append(modes, m)
		}
	}
	return modes
}

func sourceName(src LayerSource) string {
	if src.Source != "" {
		return src.Source
	}
	return src.Layer.Slug()
}

type walker struct {
	layer  token.Layer
	mode   token.Mode
	seen   map[string]bool
	result *Result
}

func (w *walker) group(g *token.Group, prefix []string, top bool) {
	for _, e := range g.Entries {
		if e.Key == "" {
			continue
		}
		if top && e.Group != nil && token.IsKnownMode(e.Key) {
			continue
		}
		segs := append(slices.Clone(prefix), e.Key)
		switch {
		case e.Group != nil:
			w.group(e.Group, segs, false)
		case e.Leaf != nil:
			w.leaf(e.Leaf, segs)
		}
	}
}

func (w *walker) leaf(l *token.Leaf, segs []string) {
	path := strings.Join(segs, ".")

	value, err := leafValue(l.Value)
	if err != nil {
		w.skip(path, l.Line, err)
		return
	}
	if w.seen[path] {
		w.skip(path, l.Line, schema.ErrDuplicatePath)
		return
	}
	w.seen[path] = true

	tok := token.Token{
		Path:        path,
		Layer:       w.layer,
		Mode:        w.mode,
		CSSVariable: token.CSSVariableName(w.layer, path),
		Description: l.Description,
		Line:        l.Line,
	}
	if w.layer == token.Greenshift {
		tok.WPVariable = token.WPVariableName(path)
	}

	ref, isRef := token.ParseReference(value)
	if isRef {
		tok.Value = ref.Raw
		tok.Reference = ref.Raw
		tok.Status = token.StatusPending
	} else {
		tok.Value = value
		tok.Status = token.StatusLiteral
	}
	tok.Type = common.ResolveType(l.Type, value, isRef)

	w.result.Tokens = append(w.result.Tokens, tok)
	if !isRef && token.IsAmbiguous(value) {
		w.result.Ambiguous = append(w.result.Ambiguous, tok)
	}
}

func (w *walker) skip(path string, line int, reason error) {
	w.result.Skipped = append(w.result.Skipped, Skip{
		Path:   path,
		Layer:  w.layer,
		Mode:   w.mode,
		Line:   line,
		Reason: reason,
	})
}

// leafValue renders a raw leaf value as a single literal string.
// Lists are joined with ", " so font stacks survive as one value.
func leafValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", schema.ErrMissingValue
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return "", schema.ErrMissingValue
		}
		return s, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		return leafValue(items)
	case []any:
		if len(x) == 0 {
			return "", schema.ErrMissingValue
		}
		parts := make([]string, 0, len(x))
		for _, item := range x {
			s, err := leafValue(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), nil
	case map[string]any:
		return "", fmt.Errorf("%w: composite value", schema.ErrUnsupportedValue)
	default:
		return fmt.Sprint(x), nil
	}
}
