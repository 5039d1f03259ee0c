/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version reports which build of stratum is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time with -ldflags "-X bennypowers.dev/stratum/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// BuildInfo is the version command's JSON shape.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

// Info merges ldflags with the VCS stamps go build embeds. Flags win.
func Info() BuildInfo {
	info := BuildInfo{Version: Version, Commit: GitCommit, BuildTime: BuildTime}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// Get returns the version alone, e.g. "v0.3.1" or "dev".
func Get() string {
	return Info().Version
}

// Full returns the version with a short commit and dirty marker when known.
func Full() string {
	info := Info()
	if info.Commit == "" {
		return info.Version
	}
	commit := info.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if info.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (commit: %s)", info.Version, commit)
}
