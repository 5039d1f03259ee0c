/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package schema

import "errors"

// Sentinel errors shared by the parser, resolver and loaders.
var (
	// ErrNotATree indicates a raw source whose root is not a mapping.
	ErrNotATree = errors.New("token source is not a tree")

	// ErrMissingValue indicates a leaf with no usable value.
	ErrMissingValue = errors.New("token missing value")

	// ErrUnsupportedValue indicates a leaf whose value is a mapping or another
	// shape that has no single literal form.
	ErrUnsupportedValue = errors.New("unsupported token value")

	// ErrDuplicatePath indicates a second leaf at an already-parsed path.
	ErrDuplicatePath = errors.New("duplicate token path")

	// ErrInvalidReference indicates a malformed reference string.
	ErrInvalidReference = errors.New("invalid token reference")

	// ErrCircularReference indicates a reference chain that revisits itself.
	ErrCircularReference = errors.New("circular reference detected")

	// ErrUnresolvedReference indicates a reference whose target does not exist.
	ErrUnresolvedReference = errors.New("unresolved token reference")

	// ErrUnknownLayer indicates an unrecognized layer name.
	ErrUnknownLayer = errors.New("unknown layer")

	// ErrUnknownFormat indicates an unrecognized export format.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrInvalidDocument indicates a document that fails JSON schema validation.
	ErrInvalidDocument = errors.New("document does not match schema")
)
