// Package spotify provides the Spotify catalog client: track metadata
// lookup over a client-credentials authenticated Web API session.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/joelazwar/spotifyDragDrop/internal/core"
)

// Client fetches canonical track metadata from the Spotify Web API.
//
// Authentication uses the client-credentials flow. The oauth2 transport
// caches the bearer token process-wide and re-acquires it when expired;
// its reuse token source holds a mutex, so concurrent resolutions share a
// single in-flight refresh instead of each requesting their own token.
type Client struct {
	api    *spotify.Client
	logger *zap.Logger
}

// NewClient builds a Spotify client from application credentials.
func NewClient(ctx context.Context, cfg *core.SpotifyConfig, logger *zap.Logger) *Client {
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	httpClient := creds.Client(ctx)
	return &Client{
		api:    spotify.New(httpClient),
		logger: logger,
	}
}

// Resolve fetches catalog metadata for a Spotify track URL.
func (c *Client) Resolve(ctx context.Context, rawURL string) (*core.CatalogTrack, error) {
	trackID, err := ExtractTrackID(rawURL)
	if err != nil {
		return nil, err
	}

	track, err := c.api.GetTrack(ctx, spotify.ID(trackID))
	if err != nil {
		return nil, mapAPIError(err)
	}

	if len(track.Artists) == 0 {
		return nil, fmt.Errorf("%w: track %s has no artists", core.ErrNotFound, trackID)
	}

	catalogTrack := &core.CatalogTrack{
		ID:       trackID,
		Title:    track.Name,
		Artist:   track.Artists[0].Name,
		Album:    track.Album.Name,
		Duration: time.Duration(track.Duration) * time.Millisecond,
	}

	// Absent album art is not an error; the pipeline treats art as cosmetic.
	if len(track.Album.Images) > 0 {
		catalogTrack.CoverArtURL = track.Album.Images[0].URL
	}

	c.logger.Info("Fetched Spotify track",
		zap.String("trackID", trackID),
		zap.String("title", catalogTrack.Title),
		zap.String("artist", catalogTrack.Artist),
		zap.Duration("duration", catalogTrack.Duration))

	return catalogTrack, nil
}

// ExtractTrackID pulls the track identifier out of a Spotify track URL:
// the final non-empty path segment with any trailing query string
// stripped, e.g. "https://open.spotify.com/track/abc123?si=x" -> "abc123".
func ExtractTrackID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		segment := segments[i]
		// Tolerate query strings glued onto the path by sloppy copy-paste.
		if idx := strings.Index(segment, "?"); idx != -1 {
			segment = segment[:idx]
		}
		if segment != "" {
			return segment, nil
		}
	}

	return "", fmt.Errorf("%w: no track id in URL %q", core.ErrInvalidInput, rawURL)
}

// mapAPIError classifies Web API and token endpoint failures into the
// engine's error taxonomy.
func mapAPIError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: token request rejected: %v", core.ErrAuth, retrieveErr)
	}

	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusNotFound, http.StatusBadRequest:
			return fmt.Errorf("%w: %s", core.ErrNotFound, apiErr.Message)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", core.ErrAuth, apiErr.Message)
		default:
			return fmt.Errorf("%w: spotify API status %d: %s", core.ErrTransport, apiErr.Status, apiErr.Message)
		}
	}

	return fmt.Errorf("%w: %v", core.ErrTransport, err)
}
