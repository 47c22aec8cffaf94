package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// MatchMaxResults is how many search candidates are considered per track.
	MatchMaxResults = 5
	// MatchDurationTolerance is the maximum allowed difference between the
	// catalog duration and a candidate video's duration for an automatic
	// match. It absorbs encoding and silence-padding drift between the
	// official catalog length and the uploaded video.
	MatchDurationTolerance = 10 * time.Second
	// topicSuffix biases search results toward auto-generated official
	// artist-channel uploads and away from covers and remixes.
	topicSuffix = " - Topic"
)

// Matcher finds the video that corresponds to a catalog track by duration
// proximity, with a single human-in-the-loop fallback attempt.
type Matcher struct {
	videos VideoClient
	logger *zap.Logger
}

// NewMatcher creates a matcher over the given video platform client.
func NewMatcher(videos VideoClient, logger *zap.Logger) *Matcher {
	return &Matcher{
		videos: videos,
		logger: logger,
	}
}

// Match returns the best candidate video for the track. Candidates are
// taken in the platform's relevance order and the first one within the
// duration tolerance wins; ties are never broken by closeness. When no
// candidate passes, fallback is invoked exactly once for a manual URL,
// which is accepted without a tolerance check.
func (m *Matcher) Match(ctx context.Context, track *CatalogTrack, fallback FallbackPrompt) (*VideoCandidate, error) {
	query := fmt.Sprintf("%s %s%s", track.Title, track.Artist, topicSuffix)

	candidates, err := m.videos.Search(ctx, query, MatchMaxResults)
	if err != nil {
		return nil, fmt.Errorf("video search for %q: %w", query, err)
	}

	for i := range candidates {
		details, err := m.videos.Details(ctx, candidates[i].VideoID)
		if err != nil {
			// A search hit can be deleted between indexing and lookup;
			// such candidates are skipped, not fatal.
			if errors.Is(err, ErrNotFound) {
				m.logger.Debug("Candidate vanished, trying next",
					zap.String("videoID", candidates[i].VideoID))
				continue
			}
			return nil, fmt.Errorf("details for candidate %s: %w", candidates[i].VideoID, err)
		}

		delta := details.Duration - track.Duration
		if delta < 0 {
			delta = -delta
		}

		m.logger.Debug("Candidate duration check",
			zap.String("videoID", details.VideoID),
			zap.Duration("videoDuration", details.Duration),
			zap.Duration("trackDuration", track.Duration),
			zap.Duration("delta", delta))

		if delta <= MatchDurationTolerance {
			m.logger.Info("Matched video by duration",
				zap.String("videoID", details.VideoID),
				zap.String("track", track.Title),
				zap.Duration("delta", delta))
			return details, nil
		}
	}

	m.logger.Info("No candidate within duration tolerance, asking for manual URL",
		zap.String("track", track.Title),
		zap.Int("candidates", len(candidates)))

	return m.matchManual(ctx, fallback)
}

// matchManual handles the single interactive fallback attempt. A manually
// supplied video is an explicit user override, so the duration tolerance
// is not re-applied.
func (m *Matcher) matchManual(ctx context.Context, fallback FallbackPrompt) (*VideoCandidate, error) {
	if fallback == nil {
		return nil, fmt.Errorf("%w: automatic matching failed and no fallback is available", ErrUnresolved)
	}

	manualURL := strings.TrimSpace(fallback(ctx))
	if manualURL == "" {
		return nil, fmt.Errorf("%w: no video URL provided", ErrUnresolved)
	}

	videoID, err := extractVideoID(manualURL)
	if err != nil {
		return nil, err
	}

	details, err := m.videos.Details(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("manual video %s: %w", videoID, err)
	}

	m.logger.Info("Accepted manually supplied video",
		zap.String("videoID", videoID))

	return details, nil
}

// extractVideoID pulls the v query parameter out of a watch URL.
func extractVideoID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	videoID := strings.TrimSpace(u.Query().Get("v"))
	if videoID == "" {
		return "", fmt.Errorf("%w: no video id in URL %q", ErrInvalidInput, rawURL)
	}

	return videoID, nil
}
