/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validate

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stratum/testutil"
	"bennypowers.dev/stratum/validator"
)

func TestVerdict(t *testing.T) {
	project := validator.Lint(testutil.LoadLayers(t, filepath.Join("project", "tokens")), nil)
	broken := validator.Lint(testutil.LoadLayers(t, "broken"), nil)

	tests := []struct {
		name   string
		report validator.Report
		strict bool
		fail   bool
	}{
		{"warnings pass", project, false, false},
		{"warnings fail when strict", project, true, true},
		{"errors fail", broken, false, true},
		{"empty report passes", validator.Report{}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verdict(tt.report, tt.strict)
			if !tt.fail {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidationFailed))
		})
	}
}

func TestOutput_Text(t *testing.T) {
	report := validator.Lint(testutil.LoadLayers(t, "broken"), nil)

	var buf bytes.Buffer
	require.NoError(t, output(&buf, report, "text", false, false))
	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "4 error(s), 6 warning(s)\n"), out)
	assert.Contains(t, out, "(cyclic-reference)")

	buf.Reset()
	require.NoError(t, output(&buf, report, "text", true, false))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "error: "), l)
	}
}

func TestOutput_Clean(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output(&buf, validator.Report{}, "text", false, false))
	assert.Equal(t, "All tokens valid.\n", buf.String())
}

func TestOutput_JSON(t *testing.T) {
	report := validator.Lint(testutil.LoadLayers(t, filepath.Join("project", "tokens")), nil)

	var buf bytes.Buffer
	require.NoError(t, output(&buf, report, "json", false, false))
	assert.Contains(t, buf.String(), `"rule": "skipped-layer"`)
	assert.Contains(t, buf.String(), `"severity": "warning"`)
}
