package player

import "github.com/pipewatch/pipewatch/playback"

const (
	// futureAhead is the buffered time past the position that counts as HaveFutureData.
	futureAhead = 1.0
	// enoughAhead is the buffered time past the position that counts as HaveEnoughData.
	enoughAhead = 10.0
)

// cacheState is a snapshot of the mpv properties readiness is derived from.
type cacheState struct {
	loaded     bool    // duration is known
	positioned bool    // time-pos is available
	starved    bool    // paused-for-cache
	idle       bool    // demuxer-cache-idle: the demuxer has nothing left to fetch
	ahead      float64 // demuxer-cache-duration
}

func (s cacheState) level() playback.ReadinessLevel {
	switch {
	case !s.loaded:
		return playback.HaveNothing
	case !s.positioned:
		return playback.HaveMetadata
	case s.starved:
		return playback.HaveCurrentData
	case s.idle, s.ahead >= enoughAhead:
		return playback.HaveEnoughData
	case s.ahead >= futureAhead:
		return playback.HaveFutureData
	default:
		return playback.HaveCurrentData
	}
}
