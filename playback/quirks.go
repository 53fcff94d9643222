package playback

import "strings"

// Quirks captures how a platform's media engine deviates from the reference behaviour.
// It is consulted only by the readiness check and the seek path.
type Quirks interface {
	// UsesPolledReadiness reports that buffering events are unreliable and readiness must be
	// derived from native levels alone.
	UsesPolledReadiness() bool
	// SupportsFastSeek reports whether keyframe seeking should be attempted before an exact clock set.
	SupportsFastSeek() bool
	Name() string
}

// ReferenceQuirks is the platform whose pipelines fire progress events reliably.
type ReferenceQuirks struct{}

func (ReferenceQuirks) UsesPolledReadiness() bool { return false }
func (ReferenceQuirks) SupportsFastSeek() bool    { return true }
func (ReferenceQuirks) Name() string              { return "reference" }

// DivergentQuirks is the platform that does not reliably fire buffering events and whose
// pipelines are always driven from the same explicit seek target.
type DivergentQuirks struct{}

func (DivergentQuirks) UsesPolledReadiness() bool { return true }
func (DivergentQuirks) SupportsFastSeek() bool    { return false }
func (DivergentQuirks) Name() string              { return "divergent" }

// QuirksFor resolves a configured platform name. Unknown names and "auto" resolve to the
// reference platform.
func QuirksFor(name string) Quirks {
	if strings.EqualFold(strings.TrimSpace(name), "divergent") {
		return DivergentQuirks{}
	}
	return ReferenceQuirks{}
}
