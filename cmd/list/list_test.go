/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package list

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/query"
	"bennypowers.dev/stratum/testutil"
	"bennypowers.dev/stratum/token"
)

func TestOutput_Names(t *testing.T) {
	result := query.Run(testutil.ProjectTokens(t), query.Filter{
		Layers:  []token.Layer{token.Primitives},
		Resolve: true,
	})

	var buf bytes.Buffer
	require.NoError(t, output(&buf, result, "names", false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "--primitives-color-emerald-400", lines[0])
	assert.Equal(t, "--primitives-duration-fast", lines[11])
}

func TestOutput_Stats(t *testing.T) {
	result := query.Run(testutil.ProjectTokens(t), query.Filter{
		Layers: []token.Layer{token.Typography},
	})

	var buf bytes.Buffer
	require.NoError(t, output(&buf, result, "names", true))
	assert.Contains(t, buf.String(), "\n5 token(s)\n  layers: Typography\n")
}

func TestOutput_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := output(&buf, query.Result{}, "yaml", false)
	assert.ErrorContains(t, err, `unknown format "yaml"`)
}

func TestRun_JSON(t *testing.T) {
	viper.Set("root", "../../testdata/project")
	t.Cleanup(viper.Reset)

	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	Cmd.SetArgs([]string{"--prefix", "Color.Brand", "--mode", "dark", "--format", "json"})
	require.NoError(t, Cmd.ExecuteContext(t.Context()))

	var doc struct {
		Tokens []struct {
			Path  string `json:"path"`
			Value string `json:"value"`
			Mode  string `json:"mode"`
		} `json:"tokens"`
		Stats struct {
			Count int `json:"count"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, 2, doc.Stats.Count)
	require.Len(t, doc.Tokens, 2)
	assert.Equal(t, "Color.Brand.Strong", doc.Tokens[1].Path)
	assert.Equal(t, "#34d399", doc.Tokens[1].Value)
	assert.Equal(t, "Dark", doc.Tokens[1].Mode)
}

func TestFilterFromFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown layer", []string{"--layer", "colors"}, "colors"},
		{"unknown type", []string{"--type", "gradient"}, `unknown token type "gradient"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			for _, name := range []string{"layer", "mode", "type"} {
				cmd.Flags().StringSlice(name, nil, "")
			}
			cmd.Flags().String("prefix", "", "")
			cmd.Flags().Bool("raw", false, "")
			require.NoError(t, cmd.Flags().Parse(tt.args))

			_, err := filterFromFlags(cmd)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
