// Package catalog resolves a video ID to the tracks a stream proxy offers for it and
// turns them into playable variants.
package catalog

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pipewatch/pipewatch/util"
)

// Video is the subset of the proxy's stream listing pipewatch needs.
type Video struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Uploader     string   `json:"uploader"`
	Duration     float64  `json:"duration"`
	Livestream   bool     `json:"livestream"`
	VideoStreams []Stream `json:"videoStreams"`
	AudioStreams []Stream `json:"audioStreams"`
}

// Stream is one track entry of the listing.
type Stream struct {
	URL       string `json:"url"`
	Format    string `json:"format"`
	Quality   string `json:"quality"`
	MimeType  string `json:"mimeType"`
	Codec     string `json:"codec"`
	VideoOnly bool   `json:"videoOnly"`
	Bitrate   int    `json:"bitrate"`
	Height    int    `json:"height"`
	FPS       int    `json:"fps"`
}

// Container is the file container derived from the MIME type: webm, mp4 or m4a.
func (s Stream) Container() string {
	switch strings.ToLower(strings.TrimSpace(strings.Split(s.MimeType, ";")[0])) {
	case "video/webm", "audio/webm":
		return "webm"
	case "video/mp4":
		return "mp4"
	case "audio/mp4", "audio/m4a":
		return "m4a"
	}
	return strings.ToLower(s.Format)
}

// Resolution returns the vertical resolution, read from the quality label when the
// listing omits it.
func (s Stream) Resolution() int {
	if s.Height > 0 {
		return s.Height
	}
	digits := strings.TrimLeftFunc(s.Quality, func(r rune) bool { return r < '0' || r > '9' })
	if i := strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		digits = digits[:i]
	}
	n, _ := strconv.Atoi(digits)
	return n
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var pathPattern = regexp.MustCompile(`/(?:shorts|embed|live|v)/(?P<id>[A-Za-z0-9_-]{11})`)

// ParseID extracts a video ID from a bare ID or a watch, short or embed URL.
func ParseID(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if idPattern.MatchString(input) {
		return input, true
	}

	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return "", false
	}

	if v := u.Query().Get("v"); idPattern.MatchString(v) {
		return v, true
	}

	if strings.HasSuffix(u.Host, "youtu.be") {
		id := strings.Trim(u.Path, "/")
		return id, idPattern.MatchString(id)
	}

	if id := util.ReGroups(pathPattern, u.Path)["id"]; id != "" {
		return id, true
	}
	return "", false
}

// WatchURL is the frontend page of a video.
func WatchURL(frontend, id string) string {
	return strings.TrimRight(frontend, "/") + "/watch?v=" + url.QueryEscape(id)
}
