// Package history remembers where each video was left off.
package history

import (
	"sort"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/pipewatch/pipewatch/filesystem"
	"github.com/pipewatch/pipewatch/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	cacher     *gache.Cache[map[string]*SavedVideo]
	cacherOnce sync.Once
)

func store() *gache.Cache[map[string]*SavedVideo] {
	cacherOnce.Do(func() {
		cacher = gache.New[map[string]*SavedVideo](&gache.Options{
			Path:       where.History(),
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return cacher
}

// Get returns every saved video keyed by ID.
func Get() (map[string]*SavedVideo, error) {
	cached, expired, err := store().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedVideo), nil
	}
	return cached, nil
}

// Find returns the saved state of a video.
func Find(id string) (mo.Option[*SavedVideo], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*SavedVideo](), err
	}
	if video, ok := saved[id]; ok {
		return mo.Some(video), nil
	}
	return mo.None[*SavedVideo](), nil
}

// Position returns where to resume a video. Finished videos start over.
func Position(id string) (mo.Option[float64], error) {
	found, err := Find(id)
	if err != nil {
		return mo.None[float64](), err
	}

	video, ok := found.Get()
	if !ok || video.Finished() || video.Position <= 0 {
		return mo.None[float64](), nil
	}
	return mo.Some(video.Position), nil
}

// Latest returns the most recently updated video.
func Latest() (mo.Option[*SavedVideo], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*SavedVideo](), err
	}

	videos := lo.Values(saved)
	if len(videos) == 0 {
		return mo.None[*SavedVideo](), nil
	}
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].UpdatedAt.After(videos[j].UpdatedAt)
	})
	return mo.Some(videos[0]), nil
}

// Save stores the playback state of a video.
func Save(video SavedVideo) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	video.UpdatedAt = time.Now()
	saved[video.ID] = &video
	return store().Set(saved)
}

// Remove forgets a video.
func Remove(id string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, id)
	return store().Set(saved)
}
