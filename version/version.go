package version

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/pipewatch/pipewatch/filesystem"
	"github.com/pipewatch/pipewatch/network"
	"github.com/pipewatch/pipewatch/where"
)

// ReleasesURL is the endpoint describing the latest published release.
const ReleasesURL = "https://api.github.com/repos/pipewatch/pipewatch/releases/latest"

const lookupTimeout = 5 * time.Second

var (
	versionCacher *gache.Cache[string]
	cacherOnce    sync.Once
)

func cacher() *gache.Cache[string] {
	cacherOnce.Do(func() {
		versionCacher = gache.New[string](&gache.Options{
			Path:       where.Version(),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return versionCacher
}

// Latest returns the newest released version, cached for two days.
func Latest() (string, error) {
	ver, expired, err := cacher().Get()
	if err != nil {
		return "", err
	}
	if !expired && ver != "" {
		return ver, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := network.GetJSON(ctx, network.Client, ReleasesURL, &release); err != nil {
		return "", err
	}
	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver = strings.TrimPrefix(release.TagName, "v")
	_ = cacher().Set(ver)
	return ver, nil
}
