/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "strings"

// Mode names an appearance or responsive variant of a token.
// The empty Mode means the token applies in every mode.
type Mode string

const (
	ModeLight   Mode = "Light"
	ModeDark    Mode = "Dark"
	ModeMobile  Mode = "Mobile"
	ModeDesktop Mode = "Desktop"
)

// KnownModes are the top-level keys recognized as mode splits in raw sources.
var KnownModes = []Mode{ModeLight, ModeDark, ModeMobile, ModeDesktop}

// DefaultModes returns the modes a layer is parsed once per.
func DefaultModes(l Layer) []Mode {
	switch l {
	case Semantic, Greenshift:
		return []Mode{ModeLight, ModeDark}
	default:
		return nil
	}
}

// ParseMode normalizes a mode name. Known modes are matched case-insensitively;
// other names are returned trimmed.
func ParseMode(s string) Mode {
	s = strings.TrimSpace(s)
	for _, m := range KnownModes {
		if strings.EqualFold(string(m), s) {
			return m
		}
	}
	return Mode(s)
}

// IsKnownMode reports whether key names one of KnownModes.
func IsKnownMode(key string) bool {
	for _, m := range KnownModes {
		if strings.EqualFold(string(m), key) {
			return true
		}
	}
	return false
}

// Matches reports whether key names m, case-insensitively.
func (m Mode) Matches(key string) bool {
	return m != "" && strings.EqualFold(string(m), key)
}
