// Package playback implements the dual-track playback synchronizer: a state machine that makes an
// independently buffered video pipeline and audio pipeline behave as one seekable, pausable player.
package playback

// State is the controller's playback state. The machine has no terminal state; it cycles between
// StatePlaying, StatePaused and StateLoading for the lifetime of a video view.
type State int

const (
	// StateInitial means nothing has been requested yet.
	StateInitial State = iota

	// StateLoading means a play, seek or format change is waiting for readiness.
	StateLoading

	// StatePlaying means both active pipelines were started successfully.
	StatePlaying

	// StatePaused means both active pipelines were stopped successfully.
	StatePaused
)

// String returns a human-readable label for the state.
func (s State) String() string {
	switch s {
	case StateInitial:
		return "Initial"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}
