package history

import (
	"fmt"
	"time"

	"github.com/pipewatch/pipewatch/playback"
)

// finishedRatio is the watched fraction past which a video restarts from the beginning.
const finishedRatio = 0.95

// SavedVideo is the last known playback state of one video.
type SavedVideo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Uploader  string    `json:"uploader,omitempty"`
	Position  float64   `json:"position"`
	Duration  float64   `json:"duration"`
	Format    string    `json:"format"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Finished reports whether the video was watched to the end.
func (s *SavedVideo) Finished() bool {
	return s.Duration > 0 && s.Position >= s.Duration*finishedRatio
}

func (s *SavedVideo) String() string {
	return fmt.Sprintf("%s : %s / %s", s.Title, playback.FormatTime(s.Position), playback.FormatTime(s.Duration))
}
