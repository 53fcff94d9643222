package player

import (
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pipewatch/pipewatch/constant"
	"github.com/pipewatch/pipewatch/log"
	"github.com/pipewatch/pipewatch/playback"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// ErrNotRunning is returned by commands issued before the first Attach or after the process exited.
var ErrNotRunning = errors.New("mpv is not running")

// MPV is one mpv process used as a playback.Pipeline.
type MPV struct {
	role    Role
	title   string
	headers map[string]string

	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	mu         sync.Mutex // serialises IPC round trips

	listener *EventListener

	hmu     sync.Mutex
	handler func(playback.EventKind)
}

// NewMPV creates a pipeline for role. Nothing is spawned until Attach.
func NewMPV(role Role, title string, headers map[string]string) *MPV {
	return &MPV{
		role:    role,
		title:   sanitizeTitle(title),
		headers: headers,
		exited:  make(chan struct{}),
	}
}

// Role returns the half of the stream this process renders.
func (m *MPV) Role() Role { return m.role }

// Attach points the pipeline at track, paused at start seconds. The first call spawns mpv;
// later calls replace the loaded file in the running process. The position goes through
// mpv's start option because loadfile returns before the file can be seeked.
func (m *MPV) Attach(track playback.Track, start float64) error {
	target, err := sanitizeMediaTarget(track.URL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if !m.IsRunning() {
		return m.spawn(target, track.Muxed, start)
	}

	if err := m.Set("pause", true); err != nil {
		return err
	}
	if err := m.Set("options/start", startOption(start)); err != nil {
		return err
	}
	if m.role == RoleVideo {
		if err := m.Set("aid", audioTrackSelector(track.Muxed)); err != nil {
			return err
		}
	}
	_, err = m.sendCommand([]interface{}{"loadfile", target, "replace"})
	return err
}

// Detach unloads the current file and keeps the process idle.
func (m *MPV) Detach() error {
	if !m.IsRunning() {
		return nil
	}
	_, err := m.sendCommand([]interface{}{"stop"})
	return err
}

// Play unpauses the pipeline.
func (m *MPV) Play() error {
	return m.Set("pause", false)
}

// Pause pauses the pipeline.
func (m *MPV) Pause() error {
	return m.Set("pause", true)
}

// SetClock seeks to seconds exactly.
func (m *MPV) SetClock(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute+exact"})
	return err
}

// FastSeek seeks to the keyframe nearest to seconds.
func (m *MPV) FastSeek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute+keyframes"})
	return err
}

// Clock returns the playback position in seconds.
func (m *MPV) Clock() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// Duration returns the media duration in seconds.
func (m *MPV) Duration() (float64, error) {
	return m.getFloatProperty("duration")
}

// ReadinessLevel derives a buffering level from mpv's demuxer cache state.
func (m *MPV) ReadinessLevel() (playback.ReadinessLevel, error) {
	if !m.IsRunning() {
		return playback.HaveNothing, nil
	}

	var s cacheState
	if _, err := m.getFloatProperty("duration"); err != nil {
		return playback.HaveNothing, nil
	}
	s.loaded = true

	if _, err := m.getFloatProperty("time-pos"); err == nil {
		s.positioned = true
	}
	if v, err := m.getBoolProperty("paused-for-cache"); err == nil {
		s.starved = v
	}
	if v, err := m.getBoolProperty("demuxer-cache-idle"); err == nil {
		s.idle = v
	}
	if v, err := m.getFloatProperty("demuxer-cache-duration"); err == nil {
		s.ahead = v
	}

	return s.level(), nil
}

// SetVolume sets the output volume from the 0..1 range.
func (m *MPV) SetVolume(volume float64) error {
	return m.Set("volume", math.Round(volume*100))
}

// SetFullscreen toggles the video window's fullscreen mode.
func (m *MPV) SetFullscreen(on bool) error {
	return m.Set("fullscreen", on)
}

// SetChapters marks the segments on the mpv timeline.
func (m *MPV) SetChapters(segments []playback.Segment) error {
	_, err := m.sendCommand([]interface{}{"set_property", "chapter-list", Chapters(segments)})
	return err
}

// OnEvent registers the lifecycle handler. Events arrive on the listener goroutine.
func (m *MPV) OnEvent(handler func(playback.EventKind)) {
	m.hmu.Lock()
	m.handler = handler
	m.hmu.Unlock()
}

func (m *MPV) emit(e playback.EventKind) {
	m.hmu.Lock()
	handler := m.handler
	m.hmu.Unlock()

	if handler != nil {
		handler(e)
	}
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// IsRunning reports whether the process is alive and answering IPC.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" || m.cmd == nil {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close quits mpv, killing it when it does not exit in time, and removes the socket.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
	}
	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Set writes an mpv property.
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

func (m *MPV) spawn(target string, muxed bool, start float64) error {
	path, err := socketPath(os.TempDir(), m.role)
	if err != nil {
		return err
	}
	m.socketPath = path

	m.cmd = exec.Command(Executable, m.args(target, muxed, start)...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func(cmd *exec.Cmd, exited chan struct{}) {
		_ = cmd.Wait()
		close(exited)
	}(m.cmd, m.exited)

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing %s mpv: socket never became ready", m.role)
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.emit)
	if err := m.listener.Start(); err != nil {
		return fmt.Errorf("%s events: %w", m.role, err)
	}
	return nil
}

// args respects the user's mpv.conf: only IPC, identity, role and start-up state are set.
func (m *MPV) args(target string, muxed bool, start float64) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", m.title),
		fmt.Sprintf("--title=%s", m.title),
		"--idle=yes",
		"--keep-open=yes",
		"--pause=yes",
		"--cache=yes",
		"--start=" + startOption(start),
	}

	switch m.role {
	case RoleVideo:
		args = append(args, "--force-window=yes", "--aid="+audioTrackSelector(muxed))
	case RoleAudio:
		args = append(args, "--vid=no", "--force-window=no")
	}

	if header := headerFields(m.headers); header != "" {
		args = append(args, fmt.Sprintf("--http-header-fields=%s", header))
	}
	args = append(args, fmt.Sprintf("--user-agent=%s", constant.UserAgent))

	return append(args, target)
}

// startOption formats an absolute position for mpv's start option.
func startOption(start float64) string {
	if math.IsNaN(start) || math.IsInf(start, 0) || start < 0 {
		start = 0
	}
	return strconv.FormatFloat(start, 'f', 3, 64)
}

func audioTrackSelector(muxed bool) string {
	if muxed {
		return "auto"
	}
	return "no"
}

func headerFields(headers map[string]string) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%s: %s", k, strings.ReplaceAll(headers[k], ",", "%2C"))
	}
	return b.String()
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.getProperty(name)
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}
	return val, nil
}

func (m *MPV) getBoolProperty(name string) (bool, error) {
	data, err := m.getProperty(name)
	if err != nil {
		return false, err
	}

	val, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, data)
	}
	return val, nil
}

func (m *MPV) getProperty(name string) (interface{}, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("property %s: nil response", name)
	}
	return data, nil
}

// sanitizeMediaTarget rejects anything mpv could read as a flag or a non-http locator.
func sanitizeMediaTarget(link string) (string, error) {
	if err := playback.ValidateLocator(link); err != nil {
		return "", err
	}

	l := strings.TrimSpace(link)
	if strings.Contains(l, "://") {
		return l, nil
	}
	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
