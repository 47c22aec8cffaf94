// Package youtube provides the video platform search client over the
// key-authenticated YouTube Data API v3.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/joelazwar/spotifyDragDrop/internal/core"
	"github.com/joelazwar/spotifyDragDrop/pkg/duration"
)

const (
	// DefaultAPIBase is the YouTube Data API v3 root.
	DefaultAPIBase = "https://www.googleapis.com/youtube/v3"
)

// thumbnails is the snippet thumbnail set; default resolution is what the
// original UI displayed, so it is preferred.
type thumbnails struct {
	Default struct {
		URL string `json:"url"`
	} `json:"default"`
	Medium struct {
		URL string `json:"url"`
	} `json:"medium"`
	High struct {
		URL string `json:"url"`
	} `json:"high"`
}

func (t thumbnails) best() string {
	if t.Default.URL != "" {
		return t.Default.URL
	}
	if t.Medium.URL != "" {
		return t.Medium.URL
	}
	return t.High.URL
}

type snippet struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelID    string     `json:"channelId"`
	ChannelTitle string     `json:"channelTitle"`
	Thumbnails   thumbnails `json:"thumbnails"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string  `json:"id"`
		Snippet        snippet `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Client queries the YouTube Data API. Every call is one network request;
// nothing is cached between calls within a resolution.
type Client struct {
	apiKey  string
	apiBase string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a YouTube client from an API key.
func NewClient(cfg *core.YouTubeConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		apiBase: DefaultAPIBase,
		http: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Search runs a video search and returns candidates in the platform's own
// relevance order. Durations are not populated; an empty result set is
// not an error.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]core.VideoCandidate, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", c.apiKey)

	var body searchResponse
	if err := c.get(ctx, "/search", params, &body); err != nil {
		return nil, fmt.Errorf("video search: %w", err)
	}

	candidates := make([]core.VideoCandidate, 0, len(body.Items))
	for _, item := range body.Items {
		if item.ID.VideoID == "" {
			continue
		}
		candidates = append(candidates, core.VideoCandidate{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelID:    item.Snippet.ChannelID,
			ChannelTitle: item.Snippet.ChannelTitle,
			ThumbnailURL: item.Snippet.Thumbnails.best(),
		})
	}

	c.logger.Debug("Video search completed",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}

// Details fetches one video by id with its duration populated, normalized
// to the engine's single duration unit.
func (c *Client) Details(ctx context.Context, videoID string) (*core.VideoCandidate, error) {
	params := url.Values{}
	params.Set("part", "contentDetails,snippet")
	params.Set("id", videoID)
	params.Set("key", c.apiKey)

	var body videosResponse
	if err := c.get(ctx, "/videos", params, &body); err != nil {
		return nil, fmt.Errorf("video details: %w", err)
	}

	if len(body.Items) == 0 {
		return nil, fmt.Errorf("%w: video %s does not exist", core.ErrNotFound, videoID)
	}

	item := body.Items[0]
	videoDuration, err := duration.Parse(item.ContentDetails.Duration)
	if err != nil {
		return nil, fmt.Errorf("%w: bad duration for video %s: %v", core.ErrTransport, videoID, err)
	}

	return &core.VideoCandidate{
		VideoID:      item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ChannelID:    item.Snippet.ChannelID,
		ChannelTitle: item.Snippet.ChannelTitle,
		ThumbnailURL: item.Snippet.Thumbnails.best(),
		Duration:     videoDuration,
	}, nil
}

// get issues one API request and decodes the JSON body.
func (c *Client) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	reqURL := c.apiBase + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: YouTube API rejected the key (status %d)", core.ErrAuth, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: YouTube API status %d", core.ErrTransport, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", core.ErrTransport, err)
	}

	return nil
}
