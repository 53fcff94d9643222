package playback

// TrackKind names one of the two pipelines owned by the controller.
type TrackKind int

const (
	TrackVideo TrackKind = iota
	TrackAudio
)

func (k TrackKind) String() string {
	if k == TrackAudio {
		return "audio"
	}
	return "video"
}

// ReadinessLevel is a pipeline's native buffered-level signal on the conventional 0-4 scale.
type ReadinessLevel int

const (
	HaveNothing ReadinessLevel = iota
	HaveMetadata
	HaveCurrentData
	HaveFutureData
	HaveEnoughData
)

// ReadyThreshold is the level at which a pipeline has buffered enough to play through the
// current position without stalling.
const ReadyThreshold = HaveFutureData

// EventKind is a lifecycle notification emitted by a pipeline.
type EventKind int

const (
	// EventStalled fires when the pipeline ran out of buffered data.
	EventStalled EventKind = iota
	// EventCanPlay fires when the pipeline has buffered enough to (re)start.
	EventCanPlay
	// EventMetadataLoaded fires when duration and stream metadata are known.
	EventMetadataLoaded
)

func (e EventKind) String() string {
	switch e {
	case EventStalled:
		return "stalled"
	case EventCanPlay:
		return "can-play"
	case EventMetadataLoaded:
		return "metadata-loaded"
	default:
		return "unknown"
	}
}

// Pipeline is the runtime decoding/playback engine driving one track.
//
// Implementations may call the registered handler from any goroutine; the controller
// marshals it onto the host event loop through its Dispatcher.
type Pipeline interface {
	// Attach replaces the pipeline's source, positioned at start seconds once it loads.
	// The pipeline stays paused after attaching.
	Attach(track Track, start float64) error
	// Detach tears the current source down.
	Detach() error

	Play() error
	Pause() error

	// SetClock moves the playback position exactly to the given second.
	SetClock(seconds float64) error
	// FastSeek moves to the nearest keyframe; it may fail on engines that cannot do it.
	FastSeek(seconds float64) error

	Clock() (float64, error)
	Duration() (float64, error)
	ReadinessLevel() (ReadinessLevel, error)

	// SetVolume sets the output volume in the 0..1 range.
	SetVolume(volume float64) error

	// OnEvent registers the lifecycle handler. Registering again replaces the previous one.
	OnEvent(handler func(EventKind))
}
