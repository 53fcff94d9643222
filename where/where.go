// Package where resolves the directories and files pipewatch keeps on disk.
package where

import (
	"os"
	"path/filepath"

	"github.com/pipewatch/pipewatch/constant"
	"github.com/pipewatch/pipewatch/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "PIPEWATCH_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory. It honours XDG_CONFIG_HOME on Linux and the
// platform equivalents elsewhere unless PIPEWATCH_CONFIG_PATH is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Pipewatch))
}

// Cache resolves the directory for cached catalog responses.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Pipewatch))
}

// Logs resolves the directory holding dated log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the watch history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Version resolves the cached latest-release lookup.
func Version() string {
	return filepath.Join(Cache(), "version.json")
}
