/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load provides a high-level API for loading a layered token project.
package load

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"bennypowers.dev/stratum/config"
	"bennypowers.dev/stratum/fs"
	"bennypowers.dev/stratum/internal/logger"
	"bennypowers.dev/stratum/parser"
	"bennypowers.dev/stratum/schema"
	"bennypowers.dev/stratum/specifier"
)

var (
	// ErrLocalResolution indicates that local filesystem resolution failed.
	ErrLocalResolution = errors.New("local resolution failed")

	// ErrNetworkFallback indicates that the CDN network fallback also failed.
	ErrNetworkFallback = errors.New("network fallback failed")

	// ErrNoFetcher is returned for https sources when no Fetcher is configured.
	ErrNoFetcher = errors.New("remote source requires a fetcher")
)

// Options configures how a project is loaded.
type Options struct {
	// Root is the project directory. Defaults to the working directory.
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Config overrides the project's config file when set.
	Config *config.Config

	// Fetcher enables network access. https sources need it, and npm:
	// sources that are not installed locally fall back to a CDN through it.
	// Nil means no network access (default).
	Fetcher Fetcher

	// CDN selects the CDN provider for network fallback.
	// Takes precedence over config file if set.
	CDN specifier.CDN

	// FetchTimeout is the maximum time to wait for a network fetch.
	// Defaults to DefaultTimeout when zero. Has no effect if Fetcher is nil.
	FetchTimeout time.Duration
}

// Project is a loaded token project.
type Project struct {
	Root    string
	Config  *config.Config
	Sources []config.Source
	// Result holds the tokens of every layer in layer order, unresolved.
	Result *parser.Result
}

// Load reads the project config, resolves every layer's sources, validates
// and decodes them, and parses all layers in order.
//
// Sources may be local paths or globs, npm: specifiers (from node_modules,
// with optional CDN fallback) or https URLs (requires Options.Fetcher).
// References are left for the resolver.
func Load(ctx context.Context, opts Options) (*Project, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path: %w", err)
		}
		root = absRoot
	}

	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.LoadOrDefault(filesystem, root)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cdn := opts.CDN
	if cdn == "" {
		parsed, err := specifier.ParseCDN(cfg.CDN)
		if err != nil {
			return nil, fmt.Errorf("invalid cdn in config: %w", err)
		}
		cdn = parsed
	}

	fetchTimeout := opts.FetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = DefaultTimeout
	}

	var npmOpts []specifier.NPMOption
	if opts.Fetcher != nil {
		npmOpts = append(npmOpts, specifier.DeferMissing())
	}
	res := specifier.NewDefaultResolver(filesystem, root, npmOpts...)
	sources, err := cfg.ResolveFiles(res, filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sources: %w", err)
	}
	logger.Debug("resolved %d source(s) under %s", len(sources), root)

	r := &reader{fs: filesystem, fetcher: opts.Fetcher, timeout: fetchTimeout, cdn: cdn}
	layerSources := make([]parser.LayerSource, 0, len(sources))
	for _, src := range sources {
		content, err := r.read(ctx, src.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src.File.Specifier, err)
		}
		if err := schema.Check(schema.Source, content); err != nil {
			return nil, fmt.Errorf("%s: %w", src.File.Specifier, err)
		}
		group, err := parser.Decode(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.File.Specifier, err)
		}
		layerSources = append(layerSources, parser.LayerSource{
			Layer:  src.Layer,
			Group:  group,
			Mode:   src.Mode,
			Modes:  cfg.LayerModes(src.Layer),
			Source: src.File.Specifier,
		})
	}

	result, err := parser.ParseAllLayers(layerSources)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tokens: %w", err)
	}

	return &Project{Root: root, Config: cfg, Sources: sources, Result: result}, nil
}

type reader struct {
	fs      fs.FileSystem
	fetcher Fetcher
	timeout time.Duration
	cdn     specifier.CDN
}

// read returns the content of a resolved source. Local reads of npm:
// specifiers fall back to the CDN when a fetcher is set.
func (r *reader) read(ctx context.Context, file *specifier.ResolvedFile) ([]byte, error) {
	if file.Kind == specifier.KindURL {
		if r.fetcher == nil {
			return nil, ErrNoFetcher
		}
		return r.fetch(ctx, file.Path)
	}

	if !file.Installed() {
		return r.fetchFromCDN(ctx, file.Specifier, fmt.Errorf("package not installed: %s", file.Specifier))
	}

	content, readErr := r.fs.ReadFile(file.Path)
	if readErr == nil {
		return content, nil
	}
	localErr := fmt.Errorf("failed to read %s: %w", file.Path, readErr)
	return r.fetchFromCDN(ctx, file.Specifier, localErr)
}

// fetchFromCDN attempts to fetch content from CDN as a fallback.
// Returns the original localErr if no fetcher is provided or the specifier
// has no CDN URL.
func (r *reader) fetchFromCDN(ctx context.Context, spec string, localErr error) ([]byte, error) {
	if r.fetcher == nil {
		return nil, localErr
	}

	cdnURL, ok := specifier.CDNURL(spec, r.cdn)
	if !ok {
		return nil, localErr
	}
	logger.Debug("%s: falling back to %s", spec, cdnURL)

	content, fetchErr := r.fetch(ctx, cdnURL)
	if fetchErr != nil {
		return nil, fmt.Errorf("%w (%w), %w: %w", ErrLocalResolution, localErr, ErrNetworkFallback, fetchErr)
	}
	return content, nil
}

func (r *reader) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.fetcher.Fetch(ctx, url)
}
