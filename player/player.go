// Package player drives local mpv processes over their JSON IPC socket. Each process is one
// media pipeline: the synchronizer in package playback runs a video-only and an audio-only
// instance side by side.
package player

import (
	"os/exec"

	"github.com/pipewatch/pipewatch/playback"
)

// Role selects which half of the stream a process renders.
type Role int

const (
	// RoleVideo renders the picture. It keeps audio only for muxed tracks.
	RoleVideo Role = iota
	// RoleAudio renders sound without a window.
	RoleAudio
)

func (r Role) String() string {
	if r == RoleAudio {
		return "audio"
	}
	return "video"
}

// Executable is the binary every pipeline spawns.
const Executable = "mpv"

var _ playback.Pipeline = (*MPV)(nil)

// Available reports whether mpv is on PATH.
func Available() bool {
	_, err := exec.LookPath(Executable)
	return err == nil
}

// Pair returns the two pipelines of one view. Processes are spawned on the first Attach.
func Pair(title string, headers map[string]string) (video, audio *MPV) {
	return NewMPV(RoleVideo, title, headers), NewMPV(RoleAudio, title, headers)
}
