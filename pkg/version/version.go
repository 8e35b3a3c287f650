package version

import (
	_ "embed"
)

//go:embed VERSION
var Version string

// Get returns the current adminkit version
func Get() string {
	return Version
}
