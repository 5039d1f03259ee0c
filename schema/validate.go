/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package schema provides the shared error taxonomy and JSON schema
// validation for configuration files and raw token sources.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Document names an embedded schema.
type Document string

const (
	// Config validates .config/design-tokens.{yaml,yml,json}.
	Config Document = "config.json"

	// Source validates a raw token source document.
	Source Document = "source.json"
)

// Violation is a single schema validation failure.
type Violation struct {
	// Path is the JSON pointer to the failing instance, empty for the root.
	Path string `json:"path"`

	// Message describes the failure.
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Path != "" {
		return fmt.Sprintf("%s: %s", v.Path, v.Message)
	}
	return v.Message
}

var (
	compileOnce sync.Once
	compiled    map[Document]*jsonschema.Schema
	compileErr  error
)

func load() (map[Document]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		err := fs.WalkDir(schemaFS, "schemas", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".json") {
				return nil
			}
			data, err := schemaFS.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read embedded schema %s: %w", path, err)
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("parse embedded schema %s: %w", path, err)
			}
			return c.AddResource(strings.TrimPrefix(path, "schemas/"), doc)
		})
		if err != nil {
			compileErr = fmt.Errorf("load embedded schemas: %w", err)
			return
		}

		compiled = make(map[Document]*jsonschema.Schema)
		for _, doc := range []Document{Config, Source} {
			sch, err := c.Compile(string(doc))
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", doc, err)
				return
			}
			compiled[doc] = sch
		}
	})
	return compiled, compileErr
}

// Validate checks JSON, JSONC or YAML content against an embedded schema.
// A nil error with no violations means the document is valid. Decoding
// failures are returned as errors, schema failures as violations.
func Validate(doc Document, content []byte) ([]Violation, error) {
	schemas, err := load()
	if err != nil {
		return nil, err
	}
	sch, ok := schemas[doc]
	if !ok {
		return nil, fmt.Errorf("no embedded schema %q", doc)
	}

	instance, err := decode(content)
	if err != nil {
		return nil, err
	}

	verr := sch.Validate(instance)
	if verr == nil {
		return nil, nil
	}
	ve, ok := verr.(*jsonschema.ValidationError)
	if !ok {
		return []Violation{{Message: verr.Error()}}, nil
	}
	return collect(ve), nil
}

// Check is Validate folded into a single error wrapping ErrInvalidDocument.
func Check(doc Document, content []byte) error {
	violations, err := Validate(doc, content)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		return nil
	}
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.String()
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}

// decode turns JSON, JSONC or YAML into a JSON-typed instance.
func decode(content []byte) (any, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return jsonschema.UnmarshalJSON(bytes.NewReader(jsonc.ToJSON(trimmed)))
	}

	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	data, err := json.Marshal(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("convert YAML to JSON: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// normalize converts map[any]any produced by YAML into map[string]any.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			x[k] = normalize(val)
		}
		return x
	case map[any]any:
		result := make(map[string]any, len(x))
		for k, val := range x {
			result[fmt.Sprintf("%v", k)] = normalize(val)
		}
		return result
	case []any:
		for i, val := range x {
			x[i] = normalize(val)
		}
		return x
	default:
		return v
	}
}

// collect flattens the leaf causes of a validation error.
func collect(ve *jsonschema.ValidationError) []Violation {
	if len(ve.Causes) == 0 {
		path := ""
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		return []Violation{{Path: path, Message: ve.Error()}}
	}
	var out []Violation
	for _, cause := range ve.Causes {
		out = append(out, collect(cause)...)
	}
	return out
}
