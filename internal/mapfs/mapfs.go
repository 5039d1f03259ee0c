/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs is an in-memory fs.FileSystem for tests. Paths are
// absolute in the API and stored without the leading slash.
package mapfs

import (
	"errors"
	"io/fs"
	"path"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

var errNotDir = errors.New("not a directory")

// epoch is the modification time of every entry, so fixture walks are stable.
var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// MapFileSystem wraps fstest.MapFS behind a lock.
type MapFileSystem struct {
	mu    sync.RWMutex
	files fstest.MapFS
}

// New returns an empty filesystem.
func New() *MapFileSystem {
	return &MapFileSystem{files: make(fstest.MapFS)}
}

// AddFile stores content at p, replacing anything there.
func (m *MapFileSystem) AddFile(p string, content string, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key(p)] = &fstest.MapFile{Data: []byte(content), Mode: mode, ModTime: epoch}
}

// AddDir records an empty directory.
func (m *MapFileSystem) AddDir(p string, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key(p)] = &fstest.MapFile{Mode: fs.ModeDir | mode.Perm(), ModTime: epoch}
}

func (m *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(name)
	if parent, ok := m.files[path.Dir(k)]; ok && !parent.Mode.IsDir() {
		return &fs.PathError{Op: "open", Path: name, Err: errNotDir}
	}
	m.files[k] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: perm, ModTime: epoch}
	return nil
}

func (m *MapFileSystem) MkdirAll(p string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(p)
	if f, ok := m.files[k]; ok {
		if !f.Mode.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: p, Err: errNotDir}
		}
		return nil
	}
	m.files[k] = &fstest.MapFile{Mode: fs.ModeDir | perm.Perm(), ModTime: epoch}
	return nil
}

func (m *MapFileSystem) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.ReadFile(m.files, key(name))
}

func (m *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.ReadDir(m.files, key(name))
}

func (m *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.Stat(m.files, key(name))
}

func (m *MapFileSystem) Open(name string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.Open(key(name))
}

// Exists reports whether p is a file or a directory, including directories
// that only exist as parents of stored files.
func (m *MapFileSystem) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	k := key(p)
	if _, ok := m.files[k]; ok || k == "." {
		return true
	}
	prefix := k + "/"
	for name := range m.files {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// key maps an absolute or relative path onto an fs.FS name.
func key(p string) string {
	k := strings.TrimPrefix(path.Clean("/"+p), "/")
	if k == "" {
		return "."
	}
	return k
}
