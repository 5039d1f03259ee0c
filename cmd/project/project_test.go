/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package project

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/specifier"
)

func TestOptions(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("root", "site")
	viper.Set("timeout", 5*time.Second)
	opts, err := Options()
	require.NoError(t, err)
	assert.Equal(t, "site", opts.Root)
	assert.Equal(t, 5*time.Second, opts.FetchTimeout)
	assert.Nil(t, opts.Fetcher, "network access is opt-in")
	assert.Empty(t, opts.CDN)

	viper.Set("network", true)
	viper.Set("cdn", "JSDelivr")
	opts, err = Options()
	require.NoError(t, err)
	assert.NotNil(t, opts.Fetcher)
	assert.Equal(t, specifier.CDNJSDelivr, opts.CDN)

	viper.Set("cdn", "esm.sh")
	_, err = Options()
	assert.ErrorContains(t, err, "unknown cdn")
}

func TestLoad(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("root", "../../testdata/project")

	proj, err := Load(t.Context())
	require.NoError(t, err)
	assert.Len(t, proj.Sources, 5)
	assert.NotEmpty(t, proj.Result.Tokens)
}
