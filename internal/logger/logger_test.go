/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package logger_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"bennypowers.dev/stratum/internal/logger"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	logger.Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	logger.Warn("skipped %d leaves", 2)
	assert.Contains(t, buf.String(), "skipped 2 leaves")
	assert.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	logger.SetVerbose(true)
	logger.Debug("shown %d", 3)
	assert.Contains(t, buf.String(), "shown 3")
}

func TestDiscard(t *testing.T) {
	logger.SetOutput(io.Discard)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	logger.Info("nothing")
}
