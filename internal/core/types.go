// Package core holds the track resolution engine: shared types, the video
// matcher, the track assembler, and the working set of resolved tracks.
package core

import (
	"context"
	"time"
)

// CatalogTrack is the canonical track metadata fetched from a catalog
// platform. It is immutable for the duration of one resolution.
type CatalogTrack struct {
	ID          string
	Title       string
	Artist      string // primary performer only
	Album       string
	Duration    time.Duration // normalized from the platform's millisecond count
	CoverArtURL string        // empty when the platform has no album art
}

// VideoCandidate is one search hit on the video platform. Duration is zero
// until a details fetch populates it.
type VideoCandidate struct {
	VideoID      string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	ThumbnailURL string
	Duration     time.Duration
}

// Outcome is the terminal state of one track's download pipeline run.
type Outcome int

const (
	// OutcomeSuccess means audio was extracted and tagged.
	OutcomeSuccess Outcome = iota
	// OutcomeSkipped means the track never entered extraction.
	OutcomeSkipped
	// OutcomeFailed means extraction or tagging failed.
	OutcomeFailed
)

// String returns a short status word for user-facing messages.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// PipelineResult is the per-track report of one batch pipeline run.
// Results are produced fresh per run and never persisted.
type PipelineResult struct {
	Track   Track
	Outcome Outcome
	Reason  string // populated for Skipped and Failed
}

// CatalogClient fetches canonical track metadata for one catalog platform.
type CatalogClient interface {
	// Resolve turns a track URL into catalog metadata. It fails with
	// ErrNotFound, ErrAuth or ErrTransport (wrapped).
	Resolve(ctx context.Context, url string) (*CatalogTrack, error)
}

// VideoClient queries the video platform.
type VideoClient interface {
	// Search returns up to maxResults candidates in the platform's own
	// relevance order, without durations. No results is an empty slice,
	// not an error.
	Search(ctx context.Context, query string, maxResults int) ([]VideoCandidate, error)

	// Details fetches a single candidate by id with its duration
	// populated. It fails with ErrNotFound when the id does not exist.
	Details(ctx context.Context, videoID string) (*VideoCandidate, error)
}

// FallbackPrompt asks a human for a video URL when automatic matching
// fails. An empty or whitespace-only return means the user cancelled.
// This is the only point where the engine crosses into the UI layer.
type FallbackPrompt func(ctx context.Context) string
