package playback

import "fmt"

// Track describes one independently addressable media stream.
type Track struct {
	URL      string `json:"url" jsonschema:"description=Locator of the stream."`
	Codec    string `json:"codec" jsonschema:"description=Container or codec tag, e.g. webm or mp4a.40.2."`
	Quality  string `json:"quality" jsonschema:"description=Human readable quality label, e.g. 1080p or 128 kbps."`
	MimeType string `json:"mime_type,omitempty"`
	Bitrate  int    `json:"bitrate,omitempty"`
	// Muxed marks a track that carries audio alongside the picture.
	Muxed bool `json:"muxed,omitempty"`
}

func (t Track) String() string {
	if t.Codec == "" {
		return t.Quality
	}
	return fmt.Sprintf("%s %s", t.Quality, t.Codec)
}

// Kind discriminates the shapes a Variant can take.
type Kind int

const (
	// KindDual is adaptive delivery: a video-only track and an audio-only track.
	KindDual Kind = iota
	// KindCombined is the legacy single stream carrying both video and audio.
	KindCombined
	// KindAudioOnly carries audio alone.
	KindAudioOnly
)

func (k Kind) String() string {
	switch k {
	case KindDual:
		return "dash"
	case KindCombined:
		return "legacy"
	case KindAudioOnly:
		return "audio"
	default:
		return "unknown"
	}
}

// Variant is one playable combination of tracks offered for a video.
// Combined variants keep their single track in Video.
type Variant struct {
	Kind  Kind   `json:"kind"`
	Video *Track `json:"video,omitempty"`
	Audio *Track `json:"audio,omitempty"`
}

// Dual returns an adaptive variant with separate video and audio tracks.
func Dual(video, audio Track) Variant {
	return Variant{Kind: KindDual, Video: &video, Audio: &audio}
}

// Combined returns a legacy variant whose single track carries both signals.
func Combined(track Track) Variant {
	track.Muxed = true
	return Variant{Kind: KindCombined, Video: &track}
}

// AudioOnly returns a variant that plays audio alone.
func AudioOnly(track Track) Variant {
	return Variant{Kind: KindAudioOnly, Audio: &track}
}

// Validate reports ErrNoPlayableVariant when a track required by the kind is missing and
// ErrInvalidLocator when a required track cannot be handed to a pipeline.
func (v Variant) Validate() error {
	switch v.Kind {
	case KindDual:
		if v.Video == nil || v.Video.URL == "" || v.Audio == nil || v.Audio.URL == "" {
			return ErrNoPlayableVariant
		}
	case KindCombined:
		if v.Video == nil || v.Video.URL == "" {
			return ErrNoPlayableVariant
		}
	case KindAudioOnly:
		if v.Audio == nil || v.Audio.URL == "" {
			return ErrNoPlayableVariant
		}
	default:
		return fmt.Errorf("unknown variant kind %d: %w", v.Kind, ErrNoPlayableVariant)
	}

	for _, kind := range []TrackKind{TrackVideo, TrackAudio} {
		if t := v.track(kind); t != nil {
			if err := ValidateLocator(t.URL); err != nil {
				return fmt.Errorf("%s track: %w", kind, err)
			}
		}
	}
	return nil
}

// track returns the source the variant gives the pipeline of kind, nil when it has none.
func (v Variant) track(kind TrackKind) *Track {
	if kind == TrackVideo && v.UsesVideo() {
		return v.Video
	}
	if kind == TrackAudio && v.UsesAudio() {
		return v.Audio
	}
	return nil
}

// UsesVideo reports whether the video pipeline carries a source for this variant.
func (v Variant) UsesVideo() bool {
	return v.Kind == KindDual || v.Kind == KindCombined
}

// UsesAudio reports whether the audio pipeline carries a source for this variant.
func (v Variant) UsesAudio() bool {
	return v.Kind == KindDual || v.Kind == KindAudioOnly
}

// Label is a short description used in notifications and format lists.
func (v Variant) Label() string {
	switch v.Kind {
	case KindDual:
		return fmt.Sprintf("%s + %s", v.Video, v.Audio)
	case KindCombined:
		return fmt.Sprintf("%s (legacy)", v.Video)
	case KindAudioOnly:
		return fmt.Sprintf("%s (audio only)", v.Audio)
	}
	return "unknown"
}

// Equal reports whether both variants point at the same locators.
func (v Variant) Equal(o Variant) bool {
	url := func(t *Track) string {
		if t == nil {
			return ""
		}
		return t.URL
	}
	return v.Kind == o.Kind && url(v.Video) == url(o.Video) && url(v.Audio) == url(o.Audio)
}
