package playback

// Style holds the player's UI affordances. It is not part of synchronization but decides
// whether a click on the picture toggles playback.
type Style struct {
	ControlsVisible bool
	FullWindow      bool
	Fullscreen      bool
}

// DefaultStyle shows controls in a regular window.
func DefaultStyle() Style {
	return Style{ControlsVisible: true}
}

// SwallowClick reports whether a click should only reveal the hidden controls.
func (s Style) SwallowClick() bool {
	return !s.ControlsVisible
}
