// Package pipeline runs the per-track download and tag state machine and
// the sequential batch driver over the working set.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joelazwar/spotifyDragDrop/internal/core"
	"github.com/joelazwar/spotifyDragDrop/pkg/text"
)

// Pipeline orchestrates extraction, artwork fetch, tag writing and
// cleanup for resolved tracks.
type Pipeline struct {
	extractor Extractor
	artwork   ArtworkFetcher
	tagger    Tagger
	logger    *zap.Logger
}

// New assembles a pipeline from its step implementations.
func New(extractor Extractor, artwork ArtworkFetcher, tagger Tagger, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		artwork:   artwork,
		tagger:    tagger,
		logger:    logger,
	}
}

// AudioPath is the deterministic output location for a track.
func AudioPath(destDir string, track core.Track) string {
	name := fmt.Sprintf("%s - %s.mp3",
		text.SanitizeFilename(track.Artist()),
		text.SanitizeFilename(track.Title()))
	return filepath.Join(destDir, name)
}

// artworkPath is the deterministic temp location for downloaded art.
func artworkPath(destDir string, track core.Track) string {
	return filepath.Join(destDir, text.SanitizeFilename(track.Title())+"_cover.jpg")
}

// Run processes one track to a terminal state. Steps are strictly
// sequential: extraction, then artwork, then tagging, then cleanup.
// Artwork failure is non-fatal; every other step failure is terminal for
// the track. The temp artwork file is removed on every exit path.
func (p *Pipeline) Run(ctx context.Context, track core.Track, destDir string) core.PipelineResult {
	if strings.TrimSpace(track.Title()) == "" ||
		strings.TrimSpace(track.Artist()) == "" ||
		strings.TrimSpace(track.VideoURL()) == "" {
		return core.PipelineResult{
			Track:   track,
			Outcome: core.OutcomeSkipped,
			Reason:  "missing metadata",
		}
	}

	audioPath := AudioPath(destDir, track)

	if err := p.extractor.Extract(ctx, track.VideoURL(), audioPath); err != nil {
		p.logger.Error("Audio extraction failed",
			zap.String("track", track.String()),
			zap.Error(err))
		return core.PipelineResult{
			Track:   track,
			Outcome: core.OutcomeFailed,
			Reason:  err.Error(),
		}
	}

	artPath := p.fetchArtwork(ctx, track, destDir)
	defer p.removeArtwork(artPath)

	if err := p.tagger.Write(track, audioPath, artPath); err != nil {
		// The audio file stays on disk; partial success is visible.
		p.logger.Error("Tag write failed",
			zap.String("track", track.String()),
			zap.Error(err))
		return core.PipelineResult{
			Track:   track,
			Outcome: core.OutcomeFailed,
			Reason:  err.Error(),
		}
	}

	p.logger.Info("Track downloaded and tagged",
		zap.String("track", track.String()),
		zap.String("file", audioPath))

	return core.PipelineResult{
		Track:   track,
		Outcome: core.OutcomeSuccess,
	}
}

// fetchArtwork downloads the album art to its temp path and returns that
// path, or "" when there is no art to embed. Fetch failures are logged
// and swallowed.
func (p *Pipeline) fetchArtwork(ctx context.Context, track core.Track, destDir string) string {
	if strings.TrimSpace(track.AlbumArtURL()) == "" {
		return ""
	}

	artPath := artworkPath(destDir, track)
	if err := p.artwork.Fetch(ctx, track.AlbumArtURL(), artPath); err != nil {
		p.logger.Warn("Artwork fetch failed, continuing without embedded art",
			zap.String("track", track.String()),
			zap.Error(err))
		return ""
	}

	return artPath
}

// removeArtwork deletes the temp artwork file. Runs unconditionally after
// the tag step, on success and failure alike.
func (p *Pipeline) removeArtwork(artPath string) {
	if artPath == "" {
		return
	}
	if err := os.Remove(artPath); err != nil && !os.IsNotExist(err) {
		p.logger.Warn("Failed to remove temp artwork file",
			zap.String("path", artPath),
			zap.Error(err))
	}
}

// RunBatch processes tracks strictly in the given order, one at a time.
// A failed track never aborts the batch; every track reaches a terminal
// state and results come back in input order.
func (p *Pipeline) RunBatch(ctx context.Context, tracks []core.Track, destDir string) []core.PipelineResult {
	runID := uuid.New().String()

	p.logger.Info("Starting download batch",
		zap.String("runID", runID),
		zap.Int("tracks", len(tracks)),
		zap.String("destDir", destDir))

	results := make([]core.PipelineResult, 0, len(tracks))
	for i, track := range tracks {
		result := p.Run(ctx, track, destDir)
		results = append(results, result)

		p.logger.Info("Batch progress",
			zap.String("runID", runID),
			zap.Int("position", i+1),
			zap.Int("total", len(tracks)),
			zap.String("outcome", result.Outcome.String()))
	}

	p.logger.Info("Download batch finished",
		zap.String("runID", runID),
		zap.Int("tracks", len(results)))

	return results
}

// StatusMessage renders a per-track outcome as a short user-facing line.
func StatusMessage(result core.PipelineResult) string {
	switch result.Outcome {
	case core.OutcomeSuccess:
		return fmt.Sprintf("Downloaded: %s", result.Track.String())
	case core.OutcomeSkipped:
		return fmt.Sprintf("Skipped '%s': %s", result.Track.Title(), result.Reason)
	default:
		return fmt.Sprintf("Error downloading '%s': %s", result.Track.Title(), result.Reason)
	}
}
