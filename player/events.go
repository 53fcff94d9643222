package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/pipewatch/pipewatch/log"
	"github.com/pipewatch/pipewatch/playback"
)

// observed lists the properties the listener subscribes to, keyed by observer id.
var observed = map[int]string{
	1: "paused-for-cache",
}

// EventListener reads mpv's event stream on one persistent connection and translates it to
// playback lifecycle events.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   func(playback.EventKind)
	stopCh     chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a listener for the given socket.
func NewEventListener(socketPath string, callback func(playback.EventKind)) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		stopCh:     make(chan struct{}),
	}
}

// Start connects, registers the property observers on that same connection and starts the
// read loop. mpv only delivers property changes to the client that asked for them.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for id, name := range observed {
		if err := writeCommand(conn, []interface{}{"observe_property", id, name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true

	go el.readLoop()

	log.Debugf("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection, which ends the read loop.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

func (el *EventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	scanner := bufio.NewScanner(el.conn)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		if e, ok := translate(scanner.Bytes()); ok && el.callback != nil {
			el.callback(e)
		}
	}

	select {
	case <-el.stopCh:
	default:
		if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Warnf("event listener read error: %v", err)
		}
	}
}

// translate maps one line of mpv output to a lifecycle event. Replies to commands and
// events without a playback meaning are dropped.
func translate(line []byte) (playback.EventKind, bool) {
	var event struct {
		Event string      `json:"event"`
		Name  string      `json:"name"`
		Data  interface{} `json:"data"`
	}
	if err := json.Unmarshal(line, &event); err != nil {
		return 0, false
	}

	switch event.Event {
	case "file-loaded":
		return playback.EventMetadataLoaded, true
	case "playback-restart":
		return playback.EventCanPlay, true
	case "property-change":
		if event.Name != "paused-for-cache" {
			return 0, false
		}
		starved, ok := event.Data.(bool)
		if !ok {
			return 0, false
		}
		if starved {
			return playback.EventStalled, true
		}
		return playback.EventCanPlay, true
	}
	return 0, false
}
