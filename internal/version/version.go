// Package version holds build-time version metadata, overridable via ldflags.
package version

var (
	Version   = "1.0.0"
	Commit    = ""
	BuildDate = ""
)
