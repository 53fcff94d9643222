package playback

import (
	"sort"

	"github.com/samber/lo"
)

// CaptureRadius is half the width of the window around a segment's start in which the
// segment is caught. Only the start is watched so a segment fires once, not on every tick
// spent inside it.
const CaptureRadius = 1.0

// Segment is a time range flagged by an external service for a skippable category.
type Segment struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Category string  `json:"category"`
	UUID     string  `json:"uuid,omitempty"`
}

// Captures reports whether pos lies in the segment's capture window.
func (s Segment) Captures(pos float64) bool {
	return pos >= s.Start-CaptureRadius && pos <= s.Start+CaptureRadius
}

// FilterSegments keeps well-formed segments whose category is enabled. An empty category
// list disables every segment.
func FilterSegments(segments []Segment, categories []string) []Segment {
	enabled := lo.SliceToMap(categories, func(c string) (string, struct{}) {
		return c, struct{}{}
	})

	return lo.Filter(segments, func(s Segment, _ int) bool {
		_, ok := enabled[s.Category]
		return ok && s.End > s.Start
	})
}

// SkipEngine watches the playback position against a read-only segment list.
// It is category-agnostic: filtering happens before segments are registered.
type SkipEngine struct {
	segments []Segment
	skipped  map[int]struct{}
}

// NewSkipEngine registers segments ordered by start time.
func NewSkipEngine(segments []Segment) *SkipEngine {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	return &SkipEngine{
		segments: sorted,
		skipped:  make(map[int]struct{}),
	}
}

// Segments returns a copy of the registered segments.
func (e *SkipEngine) Segments() []Segment {
	if e == nil {
		return nil
	}
	out := make([]Segment, len(e.segments))
	copy(out, e.segments)
	return out
}

// Check returns the first segment whose capture window contains pos and which has not
// been skipped yet in this session. The returned segment is marked as skipped.
func (e *SkipEngine) Check(pos float64) (Segment, bool) {
	if e == nil {
		return Segment{}, false
	}

	for i, s := range e.segments {
		if _, done := e.skipped[i]; done {
			continue
		}
		if s.Captures(pos) {
			e.skipped[i] = struct{}{}
			return s, true
		}
	}
	return Segment{}, false
}

// Rearm forgets skips of segments whose capture window ends at or after target, so seeking
// back before or into a segment's window lets it fire again.
func (e *SkipEngine) Rearm(target float64) {
	if e == nil {
		return
	}
	for i := range e.skipped {
		if e.segments[i].Start+CaptureRadius >= target {
			delete(e.skipped, i)
		}
	}
}
