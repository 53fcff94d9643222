package catalog

const streamsJSON = `{
  "title": "Building a synth from scratch",
  "uploader": "Patchbay",
  "duration": 1312,
  "livestream": false,
  "videoStreams": [
    {"url": "https://proxy.test/v/720.webm", "format": "WEBM", "quality": "720p", "mimeType": "video/webm", "codec": "vp9", "videoOnly": true, "bitrate": 1500000, "height": 720},
    {"url": "https://proxy.test/v/1080.webm", "format": "WEBM", "quality": "1080p", "mimeType": "video/webm", "codec": "vp9", "videoOnly": true, "bitrate": 3000000, "height": 1080},
    {"url": "https://proxy.test/v/1080.mp4", "format": "MPEG_4", "quality": "1080p60", "mimeType": "video/mp4", "codec": "avc1.640028", "videoOnly": true, "bitrate": 4500000, "height": 1080, "fps": 60},
    {"url": "https://proxy.test/v/360.mp4", "format": "MPEG_4", "quality": "360p", "mimeType": "video/mp4", "codec": "avc1.42001E, mp4a.40.2", "videoOnly": false, "bitrate": 500000}
  ],
  "audioStreams": [
    {"url": "https://proxy.test/a/128.m4a", "format": "M4A", "quality": "128 kbps", "mimeType": "audio/mp4", "codec": "mp4a.40.2", "bitrate": 128000},
    {"url": "https://proxy.test/a/160.webm", "format": "WEBMA_OPUS", "quality": "160 kbps", "mimeType": "audio/webm", "codec": "opus", "bitrate": 160000},
    {"url": "https://proxy.test/a/64.webm", "format": "WEBMA_OPUS", "quality": "64 kbps", "mimeType": "audio/webm", "codec": "opus", "bitrate": 64000}
  ]
}`
