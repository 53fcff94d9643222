// Package cache keeps JSON snapshots of remote responses under the cache directory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pipewatch/pipewatch/filesystem"
	"github.com/pipewatch/pipewatch/where"
)

// GenerateKey derives a deterministic file name from the given parts.
func GenerateKey(parts ...string) string {
	sanitized := strings.ToLower(strings.Join(parts, "\x00"))
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

func path(key string) string {
	return filepath.Join(where.Cache(), key+".json")
}

// Read decodes a cached object into target when it exists and is younger than ttl.
// A non-positive ttl disables the cache.
func Read(key string, ttl time.Duration, target any) bool {
	if ttl <= 0 {
		return false
	}

	p := path(key)
	info, err := filesystem.API().Stat(p)
	if err != nil || time.Since(info.ModTime()) > ttl {
		return false
	}

	data, err := filesystem.API().ReadFile(p)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, target) == nil
}

// Write persists data atomically.
func Write(key string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return filesystem.WriteFileAtomic(path(key), encoded, 0644)
}

// CollectGarbage removes entries older than ttl in the background.
func CollectGarbage(ttl time.Duration) {
	go func() {
		_ = filesystem.API().Walk(where.Cache(), func(p string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() || filepath.Ext(p) != ".json" {
				return nil
			}
			if time.Since(info.ModTime()) > ttl {
				_ = filesystem.API().Remove(p)
			}
			return nil
		})
	}()
}
