package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pipewatch/pipewatch/internal/cache"
	"github.com/pipewatch/pipewatch/key"
	"github.com/pipewatch/pipewatch/log"
	"github.com/pipewatch/pipewatch/network"
	"github.com/spf13/viper"
)

// Client queries a Piped-compatible stream proxy.
type Client struct {
	Instance string
	HTTP     *http.Client
	// TTL bounds how long a listing is served from the cache. Zero disables caching.
	TTL time.Duration
}

// New returns a client for instance using the shared HTTP client.
func New(instance string, ttl time.Duration) *Client {
	return &Client{
		Instance: strings.TrimRight(instance, "/"),
		HTTP:     network.Client,
		TTL:      ttl,
	}
}

// FromConfig returns a client for the configured instance.
func FromConfig() *Client {
	return New(viper.GetString(key.CatalogInstance), viper.GetDuration(key.CatalogCacheTTL))
}

// Streams fetches the stream listing of a video.
func (c *Client) Streams(ctx context.Context, id string) (*Video, error) {
	cacheKey := cache.GenerateKey("streams", c.Instance, id)

	var video Video
	if cache.Read(cacheKey, c.TTL, &video) {
		log.Debugf("catalog: %s served from cache", id)
		return &video, nil
	}

	endpoint := fmt.Sprintf("%s/streams/%s", c.Instance, url.PathEscape(id))
	if err := network.GetJSON(ctx, c.HTTP, endpoint, &video); err != nil {
		return nil, fmt.Errorf("fetch streams of %s: %w", id, err)
	}
	video.ID = id

	if c.TTL > 0 {
		if err := cache.Write(cacheKey, video); err != nil {
			log.Warnf("catalog: cache %s: %v", id, err)
		}
	}

	log.Infof("catalog: %s has %d video and %d audio streams", id, len(video.VideoStreams), len(video.AudioStreams))
	return &video, nil
}
