/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package query

import (
	"fmt"
	"strings"

	"bennypowers.dev/stratum/token"
)

// Selector names one token loosely: layer and mode may be left out.
type Selector struct {
	Path  string
	Layer string
	Mode  string
}

// Find returns the token a selector names. Without a layer the lowest layer
// holding the path wins; without a mode the mode-less token wins, then the
// preferred mode, then the first variant.
func Find(tokens []token.Token, sel Selector, preferred token.Mode) (token.Token, error) {
	var layer *token.Layer
	if sel.Layer != "" {
		l, err := token.ParseLayer(sel.Layer)
		if err != nil {
			return token.Token{}, err
		}
		layer = &l
	}
	mode := token.ParseMode(sel.Mode)

	var candidates []token.Token
	for _, t := range tokens {
		if t.Path != sel.Path || (layer != nil && t.Layer != *layer) {
			continue
		}
		if mode != "" && t.Mode != mode {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return token.Token{}, fmt.Errorf("no token %s", describe(sel))
	}

	first := candidates[0]
	best, rank := first, 3
	for _, t := range candidates {
		if t.Layer != first.Layer {
			continue
		}
		r := 2
		switch t.Mode {
		case "":
			r = 0
		case preferred:
			r = 1
		}
		if r < rank {
			best, rank = t, r
		}
	}
	return best, nil
}

func describe(sel Selector) string {
	var sb strings.Builder
	if sel.Layer != "" {
		sb.WriteString(sel.Layer + ":")
	}
	sb.WriteString(sel.Path)
	if sel.Mode != "" {
		sb.WriteString("[" + sel.Mode + "]")
	}
	return sb.String()
}
