package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pipewatch/pipewatch/playback"
	"github.com/samber/lo"
)

// Format names accepted by the player.format setting.
const (
	FormatDash   = "dash"
	FormatLegacy = "legacy"
	FormatAudio  = "audio"
)

// Formats lists the accepted format names in fallback order.
var Formats = []string{FormatDash, FormatLegacy, FormatAudio}

// Preference is the user's wish for the initial variant.
type Preference struct {
	Format  string
	Quality string
}

// KindOf maps a format name to a variant kind.
func KindOf(format string) (playback.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatDash, "":
		return playback.KindDual, nil
	case FormatLegacy:
		return playback.KindCombined, nil
	case FormatAudio:
		return playback.KindAudioOnly, nil
	}
	return 0, fmt.Errorf("unknown format %q, expected one of %s", format, strings.Join(Formats, ", "))
}

func track(s Stream) playback.Track {
	codec := s.Codec
	if codec == "" {
		codec = s.Container()
	}
	return playback.Track{
		URL:      s.URL,
		Codec:    codec,
		Quality:  s.Quality,
		MimeType: s.MimeType,
		Bitrate:  s.Bitrate,
	}
}

func (v *Video) videoOnly() []Stream {
	return lo.Filter(v.VideoStreams, func(s Stream, _ int) bool { return s.VideoOnly && s.URL != "" })
}

func (v *Video) muxed() []Stream {
	return lo.Filter(v.VideoStreams, func(s Stream, _ int) bool { return !s.VideoOnly && s.URL != "" })
}

func (v *Video) audio() []Stream {
	return lo.Filter(v.AudioStreams, func(s Stream, _ int) bool { return s.URL != "" })
}

// BestAudio picks the highest bitrate audio stream, preferring one whose container pairs
// with the given video container.
func (v *Video) BestAudio(videoContainer string) (Stream, bool) {
	audio := v.audio()
	if len(audio) == 0 {
		return Stream{}, false
	}

	want := pairedAudio(videoContainer)
	sort.SliceStable(audio, func(i, j int) bool {
		mi, mj := audio[i].Container() == want, audio[j].Container() == want
		if mi != mj {
			return mi
		}
		return audio[i].Bitrate > audio[j].Bitrate
	})
	return audio[0], true
}

func pairedAudio(videoContainer string) string {
	if videoContainer == "mp4" {
		return "m4a"
	}
	return videoContainer
}

// Variants enumerates every playable variant: each video-only stream paired with its best
// audio, each muxed stream and each audio stream. Higher resolutions come first.
func Variants(v *Video) []playback.Variant {
	var variants []playback.Variant

	for _, s := range byResolution(v.videoOnly()) {
		if a, ok := v.BestAudio(s.Container()); ok {
			variants = append(variants, playback.Dual(track(s), track(a)))
		}
	}
	for _, s := range byResolution(v.muxed()) {
		variants = append(variants, playback.Combined(track(s)))
	}

	audio := v.audio()
	sort.SliceStable(audio, func(i, j int) bool { return audio[i].Bitrate > audio[j].Bitrate })
	for _, s := range audio {
		variants = append(variants, playback.AudioOnly(track(s)))
	}

	return variants
}

func byResolution(streams []Stream) []Stream {
	sort.SliceStable(streams, func(i, j int) bool {
		ri, rj := streams[i].Resolution(), streams[j].Resolution()
		if ri != rj {
			return ri > rj
		}
		return streams[i].Bitrate > streams[j].Bitrate
	})
	return streams
}

// SelectVariant builds the variant of the preferred format closest to the preferred
// quality. It fails with playback.ErrNoPlayableVariant when the video offers no track of
// the required shape.
func SelectVariant(v *Video, pref Preference) (playback.Variant, error) {
	kind, err := KindOf(pref.Format)
	if err != nil {
		return playback.Variant{}, err
	}

	switch kind {
	case playback.KindDual:
		s, ok := matchQuality(v.videoOnly(), pref.Quality)
		if !ok {
			return playback.Variant{}, playback.ErrNoPlayableVariant
		}
		a, ok := v.BestAudio(s.Container())
		if !ok {
			return playback.Variant{}, playback.ErrNoPlayableVariant
		}
		return playback.Dual(track(s), track(a)), nil

	case playback.KindCombined:
		s, ok := matchQuality(v.muxed(), pref.Quality)
		if !ok {
			return playback.Variant{}, playback.ErrNoPlayableVariant
		}
		return playback.Combined(track(s)), nil

	default:
		a, ok := v.BestAudio("webm")
		if !ok {
			return playback.Variant{}, playback.ErrNoPlayableVariant
		}
		return playback.AudioOnly(track(a)), nil
	}
}

// SelectInitial tries the preferred format and then falls back along dash, legacy and
// audio. The returned format is the one that was actually used.
func SelectInitial(v *Video, pref Preference) (playback.Variant, string, error) {
	order := append([]string{strings.ToLower(pref.Format)}, Formats...)
	for _, format := range lo.Uniq(order) {
		if _, err := KindOf(format); err != nil {
			return playback.Variant{}, "", err
		}
		variant, err := SelectVariant(v, Preference{Format: format, Quality: pref.Quality})
		if err == nil {
			return variant, format, nil
		}
	}
	return playback.Variant{}, "", playback.ErrNoPlayableVariant
}

// NextVariant returns the variant after current in Variants order, wrapping around.
func NextVariant(v *Video, current playback.Variant) (playback.Variant, bool) {
	variants := Variants(v)
	if len(variants) == 0 {
		return playback.Variant{}, false
	}

	_, i, found := lo.FindIndexOf(variants, func(o playback.Variant) bool { return o.Equal(current) })
	if !found {
		return variants[0], true
	}
	return variants[(i+1)%len(variants)], true
}

// matchQuality finds the stream whose quality label best matches want: an exact label,
// then the closest fuzzy match, then the highest resolution not above the wanted one.
func matchQuality(streams []Stream, want string) (Stream, bool) {
	if len(streams) == 0 {
		return Stream{}, false
	}
	streams = byResolution(streams)

	want = strings.TrimSpace(want)
	if want == "" {
		return streams[0], true
	}

	if s, ok := lo.Find(streams, func(s Stream) bool { return strings.EqualFold(s.Quality, want) }); ok {
		return s, true
	}

	labels := lo.Map(streams, func(s Stream, _ int) string { return s.Quality })
	if ranks := fuzzy.RankFindNormalizedFold(want, labels); len(ranks) > 0 {
		sort.Sort(ranks)
		return streams[ranks[0].OriginalIndex], true
	}

	height := Stream{Quality: want}.Resolution()
	if s, ok := lo.Find(streams, func(s Stream) bool { return height > 0 && s.Resolution() <= height }); ok {
		return s, true
	}
	return streams[len(streams)-1], true
}
