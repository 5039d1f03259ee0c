/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
	"strings"
)

// CDN is a package CDN used when an npm: specifier is not installed locally.
type CDN string

const (
	// CDNUnpkg serves packages from unpkg.com.
	CDNUnpkg CDN = "unpkg"
	// CDNJSDelivr serves packages from cdn.jsdelivr.net.
	CDNJSDelivr CDN = "jsdelivr"
)

// ValidCDNs returns the accepted CDN names.
func ValidCDNs() []string {
	return []string{string(CDNUnpkg), string(CDNJSDelivr)}
}

// ParseCDN converts a string to a CDN. The empty string is unpkg.
func ParseCDN(s string) (CDN, error) {
	switch CDN(strings.ToLower(s)) {
	case "", CDNUnpkg:
		return CDNUnpkg, nil
	case CDNJSDelivr:
		return CDNJSDelivr, nil
	default:
		return "", fmt.Errorf("unknown cdn %q (valid: %s)", s, strings.Join(ValidCDNs(), ", "))
	}
}

// CDNURL returns the CDN URL for an npm: specifier.
// Returns ("", false) for other specifiers or specifiers without a file.
func CDNURL(spec string, cdn CDN) (string, bool) {
	parsed := Parse(spec)
	if parsed.Kind != KindNPM || parsed.Package == "" || parsed.File == "" {
		return "", false
	}
	switch cdn {
	case CDNJSDelivr:
		return "https://cdn.jsdelivr.net/npm/" + parsed.Package + "/" + parsed.File, true
	default:
		return "https://unpkg.com/" + parsed.Package + "/" + parsed.File, true
	}
}
