/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

// Group is a raw, arbitrarily nested token tree as it appears in a source.
// Entries keep source order.
type Group struct {
	// Description is optional documentation for the group.
	Description string

	// Entries are the group's children in source order.
	Entries []*Entry
}

// Entry is one keyed child of a Group: either a nested group or a leaf.
type Entry struct {
	// Key is the segment this entry contributes to token paths.
	Key string

	// Group is set when the entry is a nested group.
	Group *Group

	// Leaf is set when the entry is a token definition.
	Leaf *Leaf
}

// Leaf is a raw token definition.
type Leaf struct {
	// Value is the literal or reference. Nil means the value is missing.
	Value any

	// Type is the declared type as written in the source, empty when omitted.
	Type string

	// Description is optional documentation for the token.
	Description string

	// Line is the 1-based source line, 0 when unknown.
	Line int
}

// NewGroup creates a group from entries.
func NewGroup(entries ...*Entry) *Group {
	return &Group{Entries: entries}
}

// Nested returns an entry holding a nested group.
func Nested(key string, entries ...*Entry) *Entry {
	return &Entry{Key: key, Group: NewGroup(entries...)}
}

// Value returns a leaf entry with a declared type. An empty typ means the type
// is inferred from the value.
func Value(key string, value any, typ string) *Entry {
	return &Entry{Key: key, Leaf: &Leaf{Value: value, Type: typ}}
}

// Lookup returns the direct child with the given key.
func (g *Group) Lookup(key string) (*Entry, bool) {
	if g == nil {
		return nil, false
	}
	for _, e := range g.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// ModeGroup returns the top-level subtree keyed by mode, matched
// case-insensitively.
func (g *Group) ModeGroup(mode Mode) (*Group, bool) {
	if g == nil || mode == "" {
		return nil, false
	}
	for _, e := range g.Entries {
		if e.Group != nil && mode.Matches(e.Key) {
			return e.Group, true
		}
	}
	return nil, false
}

// HasModeSplit reports whether any top-level group is keyed by a known mode.
func (g *Group) HasModeSplit() bool {
	if g == nil {
		return false
	}
	for _, e := range g.Entries {
		if e.Group != nil && IsKnownMode(e.Key) {
			return true
		}
	}
	return false
}

// HasShared reports whether the group has top-level entries that are not mode
// splits.
func (g *Group) HasShared() bool {
	if g == nil {
		return false
	}
	for _, e := range g.Entries {
		if e.Group == nil || !IsKnownMode(e.Key) {
			return true
		}
	}
	return false
}

// LeafCount returns the number of leaves in the group and nested groups.
func (g *Group) LeafCount() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, e := range g.Entries {
		switch {
		case e.Leaf != nil:
			n++
		case e.Group != nil:
			n += e.Group.LeafCount()
		}
	}
	return n
}
