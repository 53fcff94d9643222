// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Pipewatch is the canonical application identifier used for filesystem paths and CLI branding.
	Pipewatch = "pipewatch"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every request to the stream proxy and the segment service.
	UserAgent = "pipewatch/" + Version + " (+https://github.com/pipewatch/pipewatch)"
)

// Build metadata, set through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
