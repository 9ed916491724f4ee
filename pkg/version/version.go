package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var Version string

// Get returns the current version of the SDK
func Get() string {
	return strings.TrimSpace(Version)
}

// UserAgent returns the SDK metadata sent with every request
func UserAgent(app string) string {
	return app + "-" + Get()
}
