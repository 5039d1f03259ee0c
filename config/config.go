/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for design tokens tooling.
package config

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/stratum/convert"
	"bennypowers.dev/stratum/token"
)

// Config represents the project configuration.
type Config struct {
	// Layers maps a layer slug to its source files and modes.
	Layers map[string]LayerConfig `yaml:"layers" json:"layers"`

	// PreferredMode breaks ties between mode variants of a reference target.
	PreferredMode string `yaml:"preferredMode" json:"preferredMode"`

	// CSS configures the css output format.
	CSS CSSConfig `yaml:"css" json:"css"`

	// Outputs are the files the convert command writes.
	Outputs []Output `yaml:"outputs" json:"outputs"`

	// CDN selects the package CDN for npm: sources that are not installed.
	CDN string `yaml:"cdn" json:"cdn"`
}

// LayerConfig lists the sources of one layer.
type LayerConfig struct {
	// Files are paths, globs, npm: specifiers or https URLs.
	Files []FileSpec `yaml:"files" json:"files"`

	// Modes are the modes this layer's sources may split into. Empty means
	// the layer's default modes.
	Modes []string `yaml:"modes" json:"modes"`
}

// FileSpec is one source entry of a layer: a path or glob, optionally pinned to a mode.
// It can be specified as a simple string path or as an object with a mode.
type FileSpec struct {
	// Path is the file path (supports globs, npm: and https://).
	Path string `yaml:"path" json:"path"`

	// Mode pins every token of the file to one mode.
	Mode string `yaml:"mode" json:"mode"`
}

// UnmarshalYAML handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Path = node.Value
		return nil
	}

	type rawFileSpec FileSpec
	return node.Decode((*rawFileSpec)(f))
}

// UnmarshalJSON handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}

	type rawFileSpec FileSpec
	return json.Unmarshal(data, (*rawFileSpec)(f))
}

// CSSConfig configures CSS output.
type CSSConfig struct {
	// Selector is the selector of the root block (default ":root").
	Selector string `yaml:"selector" json:"selector"`

	// ModeSelectors maps a mode name to its selector or at-rule.
	ModeSelectors map[string]string `yaml:"modeSelectors" json:"modeSelectors"`

	// WordPress emits --wp--custom-- variables for Greenshift tokens.
	// Unset means true.
	WordPress *bool `yaml:"wordpress" json:"wordpress"`
}

// Output is one file written by the convert command.
type Output struct {
	Format string `yaml:"format" json:"format"`
	Path   string `yaml:"path" json:"path"`

	// Mode overrides the preferred mode for this output.
	Mode string `yaml:"mode" json:"mode"`
}

// Default returns a config reading tokens/<layer>.{yaml,yml,json} for every
// layer.
func Default() *Config {
	cfg := &Config{Layers: make(map[string]LayerConfig, len(token.Layers))}
	for _, l := range token.Layers {
		cfg.Layers[l.Slug()] = LayerConfig{
			Files: []FileSpec{{Path: "tokens/" + l.Slug() + ".{yaml,yml,json}"}},
		}
	}
	return cfg
}

// Preferred returns the configured preferred mode, empty when unset.
func (c *Config) Preferred() token.Mode {
	if c.PreferredMode == "" {
		return ""
	}
	return token.ParseMode(c.PreferredMode)
}

// LayerModes returns the configured modes of a layer, or its defaults.
func (c *Config) LayerModes(layer token.Layer) []token.Mode {
	lc, ok := c.Layers[layer.Slug()]
	if !ok || len(lc.Modes) == 0 {
		return token.DefaultModes(layer)
	}
	modes := make([]token.Mode, len(lc.Modes))
	for i, m := range lc.Modes {
		modes[i] = token.ParseMode(m)
	}
	return modes
}

// ConfiguredLayers returns the layers that list files, in layer order.
// Unknown layer keys are reported as an error.
func (c *Config) ConfiguredLayers() ([]token.Layer, error) {
	present := make(map[token.Layer]bool)
	for slug, lc := range c.Layers {
		layer, err := token.ParseLayer(slug)
		if err != nil {
			return nil, fmt.Errorf("config layers: %w", err)
		}
		if len(lc.Files) > 0 {
			present[layer] = true
		}
	}
	var out []token.Layer
	for _, l := range token.Layers {
		if present[l] {
			out = append(out, l)
		}
	}
	return out, nil
}

// ConvertOptions returns the formatter options for an output.
// A zero Output gives the project-wide options.
func (c *Config) ConvertOptions(out Output) convert.Options {
	opts := convert.DefaultOptions()
	if c.CSS.Selector != "" {
		opts.Selector = c.CSS.Selector
	}
	if c.CSS.WordPress != nil {
		opts.WordPress = *c.CSS.WordPress
	}
	if len(c.CSS.ModeSelectors) > 0 {
		opts.ModeSelectors = make(map[token.Mode]string, len(c.CSS.ModeSelectors))
		for m, sel := range c.CSS.ModeSelectors {
			opts.ModeSelectors[token.ParseMode(m)] = sel
		}
	}
	if m := c.Preferred(); m != "" {
		opts.PreferredMode = m
	}
	if out.Mode != "" {
		opts.PreferredMode = token.ParseMode(out.Mode)
	}
	return opts
}

// FilePaths returns every configured path, layer by layer.
func (c *Config) FilePaths() []string {
	var paths []string
	for _, l := range token.Layers {
		for _, spec := range c.Layers[l.Slug()].Files {
			paths = append(paths, spec.Path)
		}
	}
	return paths
}

// String summarizes the configured layers, e.g. "primitives(1) semantic(2)".
func (c *Config) String() string {
	var parts []string
	for _, l := range token.Layers {
		if lc, ok := c.Layers[l.Slug()]; ok {
			parts = append(parts, fmt.Sprintf("%s(%d)", l.Slug(), len(lc.Files)))
		}
	}
	return strings.Join(parts, " ")
}
