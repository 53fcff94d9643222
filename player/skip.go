package player

import (
	"fmt"

	"github.com/pipewatch/pipewatch/playback"
	"github.com/samber/lo"
)

// Chapters builds an mpv chapter-list that marks every segment and the content after it.
func Chapters(segments []playback.Segment) []map[string]interface{} {
	if len(segments) == 0 {
		return nil
	}

	chapters := []map[string]interface{}{{"title": "Content", "time": 0.0}}

	return append(chapters, lo.FlatMap(segments, func(s playback.Segment, _ int) []map[string]interface{} {
		return []map[string]interface{}{
			{"title": chapterTitle(s), "time": s.Start},
			{"title": "Content", "time": s.End},
		}
	})...)
}

func chapterTitle(s playback.Segment) string {
	if s.Category == "" {
		return "Sponsor"
	}
	return fmt.Sprintf("Skip: %s", s.Category)
}
