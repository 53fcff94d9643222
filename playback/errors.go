package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMounted is returned by every operation attempted before Mount attached both pipelines.
	ErrNotMounted = errors.New("media pipelines are not mounted")

	// ErrNoPlayableVariant means no track of the shape required by a format exists.
	ErrNoPlayableVariant = errors.New("no playable dash video format available")
)

// PipelineError wraps a native operation rejected by one of the media pipelines.
// The controller never changes state when it returns one.
type PipelineError struct {
	Track TrackKind
	Op    string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s pipeline %s: %v", e.Track, e.Op, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func pipelineErr(track TrackKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &PipelineError{Track: track, Op: op, Err: err}
}
