package internal

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var (
	Version    = "0.1.0"
	Prerelease = ""
	Metadata   = "dev"
	Commit     = ""
	Date       = ""
)

// FullVersion returns the semver version string with the build's prerelease
// and metadata applied. Set the variables with -ldflags at release time.
func FullVersion() string {
	v, err := semver.NewVersion(Version)
	if err != nil {
		panic(fmt.Sprintf("invalid version %v: %v", Version, err))
	}

	if Prerelease != "" {
		*v, _ = v.SetPrerelease(Prerelease)
	}

	if Metadata != "" {
		*v, _ = v.SetMetadata(Metadata)
	}

	return v.String()
}

// UserAgent is sent with every request to the authorization and data APIs.
func UserAgent() string {
	return "intellim/" + FullVersion()
}
