package playback

const (
	// DriftGraceFloor is the clock value both pipelines must pass before drift is measured.
	// Right after a fresh start both clocks sit near zero and comparing them is noise.
	DriftGraceFloor = 3.0

	// DriftTolerance is the largest divergence left uncorrected.
	DriftTolerance = 0.125
)

// CorrectDrift decides whether the video clock must be moved onto the audio clock.
// It returns the target clock and true when a correction is due.
func CorrectDrift(video, audio float64) (float64, bool) {
	if video < DriftGraceFloor || audio < DriftGraceFloor {
		return 0, false
	}

	drift := video - audio
	if drift > DriftTolerance || drift < -DriftTolerance {
		return audio, true
	}
	return 0, false
}
