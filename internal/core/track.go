package core

import (
	"fmt"
	"strings"
)

// videoWatchURL is the canonical watch URL pattern for matched videos.
const videoWatchURL = "https://www.youtube.com/watch?v=%s"

// Track is the durable unit produced by a successful resolution: catalog
// metadata combined with the matched video reference. Construction goes
// through NewTrack only; fields are unexported so a Track can never be
// mutated or exist in a partially-resolved state.
type Track struct {
	title        string
	artist       string
	album        string
	thumbnailURL string
	videoURL     string
	albumArtURL  string
}

// NewTrack assembles a Track from catalog metadata and a matched video.
// It is a pure combination with no network access and fails with
// ErrIncompleteMetadata when the catalog side lacks title or artist, or
// the video side lacks a usable id or thumbnail.
func NewTrack(catalog *CatalogTrack, video *VideoCandidate) (Track, error) {
	if catalog == nil || video == nil {
		return Track{}, fmt.Errorf("%w: missing catalog or video data", ErrIncompleteMetadata)
	}
	if strings.TrimSpace(catalog.Title) == "" {
		return Track{}, fmt.Errorf("%w: blank title", ErrIncompleteMetadata)
	}
	if strings.TrimSpace(catalog.Artist) == "" {
		return Track{}, fmt.Errorf("%w: blank artist", ErrIncompleteMetadata)
	}
	if strings.TrimSpace(video.VideoID) == "" {
		return Track{}, fmt.Errorf("%w: matched video has no id", ErrIncompleteMetadata)
	}
	if strings.TrimSpace(video.ThumbnailURL) == "" {
		return Track{}, fmt.Errorf("%w: matched video has no thumbnail", ErrIncompleteMetadata)
	}

	return Track{
		title:        catalog.Title,
		artist:       catalog.Artist,
		album:        catalog.Album,
		thumbnailURL: video.ThumbnailURL,
		videoURL:     fmt.Sprintf(videoWatchURL, video.VideoID),
		albumArtURL:  catalog.CoverArtURL,
	}, nil
}

// Title returns the track title.
func (t Track) Title() string { return t.title }

// Artist returns the primary performer.
func (t Track) Artist() string { return t.artist }

// Album returns the album name, possibly empty.
func (t Track) Album() string { return t.album }

// ThumbnailURL returns the matched video's thumbnail URL.
func (t Track) ThumbnailURL() string { return t.thumbnailURL }

// VideoURL returns the playable video URL. It is never empty for a Track
// built through NewTrack.
func (t Track) VideoURL() string { return t.videoURL }

// AlbumArtURL returns the catalog album art URL, possibly empty.
func (t Track) AlbumArtURL() string { return t.albumArtURL }

// String renders the track for status messages.
func (t Track) String() string {
	return fmt.Sprintf("%s - %s", t.artist, t.title)
}
