/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	"strings"

	"bennypowers.dev/stratum/schema"
)

// UnresolvedError reports a reference chain that ends at a missing target.
type UnresolvedError struct {
	// Path is the token being resolved.
	Path string

	// Reference is the reference that could not be followed. It differs from
	// the token's own reference when the break is further down the chain.
	Reference string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: cannot resolve %s", e.Path, e.Reference)
}

func (e *UnresolvedError) Unwrap() error {
	return schema.ErrUnresolvedReference
}

// CycleError reports a reference chain that loops.
type CycleError struct {
	// Path is the token being resolved.
	Path string

	// Cycle lists the paths forming the loop, starting at the first revisited one.
	Cycle []string
}

func (e *CycleError) Error() string {
	if len(e.Cycle) == 0 {
		return fmt.Sprintf("%s: %v", e.Path, schema.ErrCircularReference)
	}
	loop := append(append([]string(nil), e.Cycle...), e.Cycle[0])
	if e.Cycle[0] == e.Path {
		return fmt.Sprintf("%s: %v: %s", e.Path, schema.ErrCircularReference, strings.Join(loop, " → "))
	}
	return fmt.Sprintf("%s: reaches %v: %s", e.Path, schema.ErrCircularReference, strings.Join(loop, " → "))
}

func (e *CycleError) Unwrap() error {
	return schema.ErrCircularReference
}
