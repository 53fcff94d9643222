package cmd

import "github.com/pipewatch/pipewatch/catalog"

func preferenceFor(format, quality string) catalog.Preference {
	return catalog.Preference{Format: format, Quality: quality}
}

func testVideo() *catalog.Video {
	return &catalog.Video{
		ID:    "dQw4w9WgXcQ",
		Title: "Building a synth from scratch",
		VideoStreams: []catalog.Stream{
			{URL: "https://proxy.test/v/1080.webm", MimeType: "video/webm", Codec: "vp9", Quality: "1080p", VideoOnly: true, Height: 1080},
			{URL: "https://proxy.test/v/360.mp4", MimeType: "video/mp4", Codec: "avc1.42001E, mp4a.40.2", Quality: "360p", Height: 360},
		},
		AudioStreams: []catalog.Stream{
			{URL: "https://proxy.test/a/160.webm", MimeType: "audio/webm", Codec: "opus", Quality: "160 kbps", Bitrate: 160000},
		},
	}
}
