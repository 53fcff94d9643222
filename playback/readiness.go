package playback

// Readiness is the per-pipeline buffering signal: the self-reported flag set by lifecycle
// events and the polled native level.
type Readiness struct {
	VideoReady bool
	AudioReady bool
	VideoLevel ReadinessLevel
	AudioLevel ReadinessLevel
}

// Ready computes the aggregate "can play" for a variant kind.
//
// AudioOnly depends on the audio pipeline, Combined on the video pipeline and Dual on both.
// On a platform with polled readiness the flags are ignored and only native levels count.
func Ready(kind Kind, quirks Quirks, r Readiness) bool {
	videoLevel := r.VideoLevel >= ReadyThreshold
	audioLevel := r.AudioLevel >= ReadyThreshold

	if quirks.UsesPolledReadiness() {
		switch kind {
		case KindAudioOnly:
			return audioLevel
		case KindCombined:
			return videoLevel
		default:
			return videoLevel && audioLevel
		}
	}

	switch kind {
	case KindAudioOnly:
		return r.AudioReady && audioLevel
	case KindCombined:
		return r.VideoReady && videoLevel
	default:
		return r.VideoReady && r.AudioReady && videoLevel && audioLevel
	}
}
