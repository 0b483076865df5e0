// Package version reports the build version of the service.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time with -ldflags "-X .../version.Version=1.4.0 -X .../version.Commit=abc123".
var (
	Version = "dev"
	Commit  = ""
)

// Info is the payload of GET /version and `ticketgen version`.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Release bool   `json:"release"`
}

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Current returns the build version. Release builds are reported in
// canonical semver form; anything else ("dev", a branch name) is returned as is.
func Current() Info {
	v := Normalize(Version)
	if semver.IsValid(v) {
		return Info{Version: semver.Canonical(v), Commit: Commit, Release: semver.Prerelease(v) == ""}
	}
	return Info{Version: Version, Commit: Commit}
}
