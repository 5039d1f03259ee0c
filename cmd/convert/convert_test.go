/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/config"
	convertlib "bennypowers.dev/stratum/convert"
	"bennypowers.dev/stratum/load"
	"bennypowers.dev/stratum/testutil"
)

func loadProject(t *testing.T) *load.Project {
	t.Helper()
	mfs := testutil.NewFixtureFS(t, "project", "/project")
	proj, err := load.Load(t.Context(), load.Options{Root: "/project", FS: mfs})
	require.NoError(t, err)
	return proj
}

func TestGenerate(t *testing.T) {
	proj := loadProject(t)
	mfs := testutil.NewFixtureFS(t, "project", "/project")

	written, err := Generate(mfs, proj, func(o *convertlib.Options) { o.Header = "generated" })
	require.NoError(t, err)
	assert.Equal(t, []string{"/project/dist/tokens.css", "/project/dist/theme.json"}, written)

	css, err := mfs.ReadFile("/project/dist/tokens.css")
	require.NoError(t, err)
	assert.Contains(t, string(css), "generated")
	assert.Contains(t, string(css), "--primitives-color-white: #ffffff;")
	assert.Equal(t, byte('\n'), css[len(css)-1])

	theme, err := mfs.ReadFile("/project/dist/theme.json")
	require.NoError(t, err)
	assert.Contains(t, string(theme), `"$schema"`)

}

func TestGenerate_PartialFailure(t *testing.T) {
	proj := loadProject(t)
	proj.Config.Outputs = append(proj.Config.Outputs, config.Output{Format: "scss", Path: "dist/tokens.scss"})
	mfs := testutil.NewFixtureFS(t, "project", "/project")

	written, err := Generate(mfs, proj, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 output(s) failed")
	assert.Contains(t, err.Error(), "dist/tokens.scss")
	assert.Len(t, written, 2)
	assert.False(t, mfs.Exists("/project/dist/tokens.scss"))
}

func TestWithNewline(t *testing.T) {
	assert.Equal(t, "a\n", string(withNewline([]byte("a"))))
	assert.Equal(t, "a\n", string(withNewline([]byte("a\n"))))
	assert.Empty(t, withNewline(nil))
}
