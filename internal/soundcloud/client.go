// Package soundcloud provides the SoundCloud catalog client: track
// metadata lookup via the /resolve endpoint over a client-credentials
// authenticated session.
package soundcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/joelazwar/spotifyDragDrop/internal/core"
)

const (
	// DefaultTokenURL is the SoundCloud OAuth2 client-credentials endpoint.
	DefaultTokenURL = "https://api.soundcloud.com/oauth2/token"
	// DefaultAPIBase is the SoundCloud API root.
	DefaultAPIBase = "https://api.soundcloud.com"
	// tokenExpirySkew renews the token slightly before the server-side
	// expiry so in-flight requests never carry a token about to lapse.
	tokenExpirySkew = 30 * time.Second
	// requestTimeout bounds every SoundCloud HTTP request.
	requestTimeout = 10 * time.Second
)

// tokenResponse is the token endpoint's JSON body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// trackResponse is the subset of the /resolve response the engine needs.
type trackResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	DurationMs int64  `json:"duration"`
	ArtworkURL string `json:"artwork_url"`
	User       struct {
		Username string `json:"username"`
	} `json:"user"`
}

// Client fetches canonical track metadata from the SoundCloud API.
//
// The bearer token is process-wide, mutable and lazily refreshed: a mutex
// guards the cached value and a singleflight group collapses concurrent
// refreshes, so callers that race on an expired token wait for and reuse
// the same refreshed token.
type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string
	apiBase      string
	http         *http.Client
	logger       *zap.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	refresh     singleflight.Group
}

// NewClient builds a SoundCloud client from application credentials.
func NewClient(cfg *core.SoundCloudConfig, logger *zap.Logger) *Client {
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     DefaultTokenURL,
		apiBase:      DefaultAPIBase,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// Resolve fetches catalog metadata for a SoundCloud track URL. The
// platform's lookup key is the permalink URL itself, passed to /resolve.
func (c *Client) Resolve(ctx context.Context, rawURL string) (*core.CatalogTrack, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	resolveURL := fmt.Sprintf("%s/resolve?url=%s", c.apiBase, url.QueryEscape(strings.TrimSpace(rawURL)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolveURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: no SoundCloud track at %q", core.ErrNotFound, rawURL)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: SoundCloud rejected the access token", core.ErrAuth)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: SoundCloud resolve status %d", core.ErrTransport, resp.StatusCode)
	}

	var track trackResponse
	if err := json.NewDecoder(resp.Body).Decode(&track); err != nil {
		return nil, fmt.Errorf("%w: failed to decode resolve response: %v", core.ErrTransport, err)
	}

	catalogTrack := &core.CatalogTrack{
		ID:          fmt.Sprintf("%d", track.ID),
		Title:       track.Title,
		Artist:      track.User.Username,
		Duration:    time.Duration(track.DurationMs) * time.Millisecond,
		CoverArtURL: track.ArtworkURL,
	}

	c.logger.Info("Fetched SoundCloud track",
		zap.String("trackID", catalogTrack.ID),
		zap.String("title", catalogTrack.Title),
		zap.String("artist", catalogTrack.Artist),
		zap.Duration("duration", catalogTrack.Duration))

	return catalogTrack, nil
}

// accessToken returns a valid bearer token, refreshing it synchronously
// when expired. Concurrent callers share a single refresh request.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	v, err, _ := c.refresh.Do("token", func() (interface{}, error) {
		return c.fetchToken(ctx)
	})
	if err != nil {
		return "", err
	}

	token, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: unexpected token type", core.ErrAuth)
	}
	return token, nil
}

// fetchToken performs the client-credentials POST and stores the result.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", core.ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint status %d", core.ErrAuth, resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %v", core.ErrAuth, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: token endpoint returned no access token", core.ErrAuth)
	}

	expiry := time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpirySkew)

	c.mu.Lock()
	c.token = token.AccessToken
	c.tokenExpiry = expiry
	c.mu.Unlock()

	c.logger.Debug("Refreshed SoundCloud access token",
		zap.Time("expiry", expiry))

	return token.AccessToken, nil
}
