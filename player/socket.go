package player

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pipewatch/pipewatch/constant"
	"github.com/pipewatch/pipewatch/log"
)

// socketPath names an IPC socket in dir as pipewatch-<role>-<pid>-<random>.sock, so other
// sessions can tell whose it is.
func socketPath(dir string, role Role) (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}
	name := fmt.Sprintf("%s-%s-%d-%x.sock", constant.Pipewatch, role, os.Getpid(), randomBytes)
	return filepath.Join(dir, name), nil
}

// socketOwner extracts the pid from a socket name built by socketPath.
func socketOwner(name string) (int, bool) {
	parts := strings.Split(strings.TrimSuffix(name, ".sock"), "-")
	if len(parts) != 4 || parts[0] != constant.Pipewatch {
		return 0, false
	}
	pid, err := strconv.Atoi(parts[2])
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// RemoveStaleSockets deletes sockets left in the temp directory by sessions that are no
// longer running. Sockets of live sessions are never touched.
func RemoveStaleSockets() {
	if n := removeStaleSockets(os.TempDir()); n > 0 {
		log.Infof("removed %d stale mpv sockets", n)
	}
}

func removeStaleSockets(dir string) int {
	matches, err := filepath.Glob(filepath.Join(dir, constant.Pipewatch+"-*.sock"))
	if err != nil {
		return 0
	}

	var removed int
	for _, path := range matches {
		pid, ok := socketOwner(filepath.Base(path))
		if !ok || processAlive(pid) {
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Warnf("remove stale socket %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed
}
