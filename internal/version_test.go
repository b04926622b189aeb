package internal

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestFullVersion(t *testing.T) {
	type version struct {
		Version    string
		Prerelease string
		Metadata   string
		Expected   string
	}

	cases := []version{
		{
			Version:  "0.1.0",
			Expected: "0.1.0",
		},
		{
			Version:  "v0.2.0",
			Expected: "0.2.0",
		},
		{
			Version:  "0.1.0-beta",
			Expected: "0.1.0-beta",
		},
		{
			Version:    "0.1.0",
			Prerelease: "beta",
			Expected:   "0.1.0-beta",
		},
		{
			Version:    "0.1.0-beta",
			Prerelease: "rc.1",
			Expected:   "0.1.0-rc.1",
		},
		{
			Version:  "0.1.0",
			Metadata: "dev",
			Expected: "0.1.0+dev",
		},
		{
			Version:    "0.1.0",
			Prerelease: "beta",
			Metadata:   "dev",
			Expected:   "0.1.0-beta+dev",
		},
	}

	origVersion, origPrerelease, origMetadata := Version, Prerelease, Metadata
	t.Cleanup(func() {
		Version, Prerelease, Metadata = origVersion, origPrerelease, origMetadata
	})

	for _, c := range cases {
		t.Run(c.Expected, func(t *testing.T) {
			Version = c.Version
			Prerelease = c.Prerelease
			Metadata = c.Metadata
			assert.Equal(t, FullVersion(), c.Expected)
		})
	}
}

func TestUserAgent(t *testing.T) {
	origVersion, origPrerelease, origMetadata := Version, Prerelease, Metadata
	t.Cleanup(func() {
		Version, Prerelease, Metadata = origVersion, origPrerelease, origMetadata
	})

	Version, Prerelease, Metadata = "1.2.3", "", ""
	assert.Equal(t, UserAgent(), "intellim/1.2.3")
}
