/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package project loads the token project named by the global CLI flags.
package project

import (
	"context"

	"github.com/spf13/viper"

	"bennypowers.dev/stratum/load"
	"bennypowers.dev/stratum/specifier"
)

// Options builds load options from the global flags and STRATUM_*
// environment variables.
func Options() (load.Options, error) {
	opts := load.Options{
		Root:         viper.GetString("root"),
		FetchTimeout: viper.GetDuration("timeout"),
	}
	if cdn := viper.GetString("cdn"); cdn != "" {
		parsed, err := specifier.ParseCDN(cdn)
		if err != nil {
			return load.Options{}, err
		}
		opts.CDN = parsed
	}
	if viper.GetBool("network") {
		opts.Fetcher = load.NewHTTPFetcher(load.DefaultMaxSize)
	}
	return opts, nil
}

// Load loads the project at --root.
func Load(ctx context.Context) (*load.Project, error) {
	opts, err := Options()
	if err != nil {
		return nil, err
	}
	return load.Load(ctx, opts)
}
