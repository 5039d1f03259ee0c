/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a configurable logger that can be silenced for MCP integrations.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu    sync.RWMutex
	level = zerolog.InfoLevel
	log   = newLogger(os.Stderr)
)

func newLogger(w io.Writer) zerolog.Logger {
	if w != io.Discard {
		if f, ok := w.(*os.File); ok && (f == os.Stderr || f == os.Stdout) {
			w = zerolog.ConsoleWriter{Out: f, PartsExclude: []string{zerolog.TimestampFieldName}}
		}
	}
	return zerolog.New(w).Level(level)
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(w)
}

// SetVerbose enables debug messages.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		level = zerolog.DebugLevel
	} else {
		level = zerolog.InfoLevel
	}
	log = log.Level(level)
}

// Logger returns the underlying structured logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	l := Logger()
	l.Warn().Msg(fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func Info(format string, args ...any) {
	l := Logger()
	l.Info().Msg(fmt.Sprintf(format, args...))
}

// Debug logs a message shown only in verbose mode.
func Debug(format string, args ...any) {
	l := Logger()
	l.Debug().Msg(fmt.Sprintf(format, args...))
}
