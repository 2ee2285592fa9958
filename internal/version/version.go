// Package version defines CAV CLI version information and build metadata.
//
// CommitHash should be set using -ldflags during compilation.
package version

import (
	"fmt"
	"strings"
)

// CommitHash stores the current git commit hash of this build.
var CommitHash string

const (
	appMajor uint = 0
	appMinor uint = 3
	appPatch uint = 0
)

// Version returns the application version as a semantic version string.
func Version() string {
	return fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
}

// RichVersion returns the semantic version along with git metadata when
// available.
func RichVersion() string {
	if strings.TrimSpace(CommitHash) == "" {
		return Version()
	}
	return fmt.Sprintf("%s commit_hash=%s", Version(), strings.TrimSpace(CommitHash))
}
