/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package theme builds per-mode variable snapshots of a token set, reads
// them back from CSS and compares them.
package theme

import (
	"sort"

	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/token"
)

// Snapshot maps CSS variable names to values for one mode.
// It stands in for a computed style: nothing is applied globally.
type Snapshot struct {
	Mode   token.Mode        `json:"mode,omitempty"`
	Values map[string]string `json:"values"`
}

// Get returns the value of a variable.
func (s Snapshot) Get(name string) (string, bool) {
	v, ok := s.Values[name]
	return v, ok
}

// Names returns the variable names in sorted order.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.Values))
	for n := range s.Values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Build resolves tokens with mode preferred and snapshots the mode-less
// tokens plus the variants in mode. Mode variants override mode-less values
// of the same variable. Broken tokens have no value and are left out.
func Build(tokens []token.Token, mode token.Mode) Snapshot {
	resolved := resolver.ResolveAll(tokens, resolver.WithPreferredMode(mode))
	s := Snapshot{Mode: mode, Values: make(map[string]string)}
	for _, pass := range []token.Mode{"", mode} {
		for _, t := range resolved {
			if t.Mode != pass || t.Status.Broken() {
				continue
			}
			s.Values[t.CSSVariable] = t.Value
			if t.WPVariable != "" {
				s.Values[t.WPVariable] = t.Value
			}
		}
		if mode == "" {
			break
		}
	}
	return s
}

// Merge returns base overlaid with the values of overlay.
func Merge(base, overlay Snapshot) Snapshot {
	out := Snapshot{Mode: overlay.Mode, Values: make(map[string]string, len(base.Values)+len(overlay.Values))}
	if out.Mode == "" {
		out.Mode = base.Mode
	}
	for k, v := range base.Values {
		out.Values[k] = v
	}
	for k, v := range overlay.Values {
		out.Values[k] = v
	}
	return out
}

// Change is one variable that differs between two snapshots.
// Before is empty for added variables, After for removed ones.
type Change struct {
	Variable string `json:"variable"`
	Before   string `json:"before,omitempty"`
	After    string `json:"after,omitempty"`
}

// Delta lists the differences from one snapshot to another, each sorted by
// variable name.
type Delta struct {
	Added   []Change `json:"added"`
	Removed []Change `json:"removed"`
	Changed []Change `json:"changed"`
}

// Empty reports whether the snapshots were equal.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares two snapshots.
func Diff(from, to Snapshot) Delta {
	var d Delta
	for _, name := range from.Names() {
		before := from.Values[name]
		after, ok := to.Values[name]
		switch {
		case !ok:
			d.Removed = append(d.Removed, Change{Variable: name, Before: before})
		case after != before:
			d.Changed = append(d.Changed, Change{Variable: name, Before: before, After: after})
		}
	}
	for _, name := range to.Names() {
		if _, ok := from.Values[name]; !ok {
			d.Added = append(d.Added, Change{Variable: name, After: to.Values[name]})
		}
	}
	return d
}
