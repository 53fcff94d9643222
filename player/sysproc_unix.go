//go:build !windows

package player

import (
	"errors"
	"os/exec"
	"syscall"
)

// sysProcAttr puts mpv in its own process group so a terminal SIGINT aimed at the TUI does
// not tear the pipelines down before history is saved.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killProcess kills mpv together with any helper it forked (ytdl hooks, decoders).
func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}

// processAlive reports whether pid exists. A process owned by another user still counts.
func processAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
