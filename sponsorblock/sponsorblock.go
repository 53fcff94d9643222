// Package sponsorblock fetches community-submitted skip segments for a video.
package sponsorblock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pipewatch/pipewatch/key"
	"github.com/pipewatch/pipewatch/log"
	"github.com/pipewatch/pipewatch/network"
	"github.com/pipewatch/pipewatch/playback"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Categories lists the segment categories the service knows.
var Categories = []string{"sponsor", "selfpromo", "interaction", "intro", "outro", "preview", "music_offtopic", "filler"}

// Client queries a SponsorBlock compatible API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for the API at baseURL using the shared HTTP client.
func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: network.Client}
}

// FromConfig returns a client for the configured API, or nil when skipping is disabled.
func FromConfig() *Client {
	if !viper.GetBool(key.SponsorBlockEnable) {
		return nil
	}
	return New(viper.GetString(key.SponsorBlockAPI))
}

type apiSegment struct {
	Segment    [2]float64 `json:"segment"`
	Category   string     `json:"category"`
	ActionType string     `json:"actionType"`
	UUID       string     `json:"UUID"`
}

// GetSegments returns the skippable segments of videoID in the given categories.
// The service is optional: a failed lookup is logged and yields no segments, never an error
// that would keep the video from playing. A nil client also yields no segments.
func (c *Client) GetSegments(ctx context.Context, videoID string, categories []string) ([]playback.Segment, error) {
	if c == nil || len(categories) == 0 {
		return nil, nil
	}

	endpoint, err := c.endpoint(videoID, categories)
	if err != nil {
		return nil, err
	}

	var data []apiSegment
	if err := network.GetJSON(ctx, c.HTTP, endpoint, &data); err != nil {
		// 404 means no segments were submitted for the video.
		if status, ok := err.(*network.StatusError); ok && status.Status == http.StatusNotFound {
			return nil, nil
		}
		log.Warnf("sponsorblock lookup for %s failed: %v", videoID, err)
		return nil, nil
	}

	segments := lo.FilterMap(data, func(s apiSegment, _ int) (playback.Segment, bool) {
		return playback.Segment{
			Start:    s.Segment[0],
			End:      s.Segment[1],
			Category: s.Category,
			UUID:     s.UUID,
		}, s.ActionType == "" || s.ActionType == "skip"
	})

	log.Infof("sponsorblock: %d segments for %s", len(segments), videoID)
	return playback.FilterSegments(segments, categories), nil
}

func (c *Client) endpoint(videoID string, categories []string) (string, error) {
	encoded, err := json.Marshal(categories)
	if err != nil {
		return "", fmt.Errorf("encode categories: %w", err)
	}

	q := url.Values{}
	q.Set("videoID", videoID)
	q.Set("categories", string(encoded))
	return fmt.Sprintf("%s/api/skipSegments?%s", c.BaseURL, q.Encode()), nil
}
