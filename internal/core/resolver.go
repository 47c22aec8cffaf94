package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/joelazwar/spotifyDragDrop/pkg/platform"
)

// Resolver turns a raw track URL into a fully assembled Track: platform
// identification, catalog lookup, video matching, assembly. One URL is
// resolved completely before the next begins; a failed URL only affects
// itself.
type Resolver struct {
	catalogs map[platform.Platform]CatalogClient
	matcher  *Matcher
	logger   *zap.Logger
}

// NewResolver wires catalog clients and the matcher together. Catalogs
// without configured credentials may be omitted from the map; URLs for
// them then fail resolution with a descriptive error.
func NewResolver(catalogs map[platform.Platform]CatalogClient, matcher *Matcher, logger *zap.Logger) *Resolver {
	return &Resolver{
		catalogs: catalogs,
		matcher:  matcher,
		logger:   logger,
	}
}

// Resolve processes a single dropped URL end to end. The fallback prompt
// is only consulted when automatic video matching fails.
func (r *Resolver) Resolve(ctx context.Context, rawURL string, fallback FallbackPrompt) (Track, error) {
	source := platform.Identify(rawURL)

	switch source {
	case platform.Invalid:
		return Track{}, fmt.Errorf("%w: not a valid URL: %q", ErrInvalidInput, rawURL)
	case platform.Unknown:
		return Track{}, fmt.Errorf("%w: unsupported platform for URL %q", ErrInvalidInput, rawURL)
	}

	catalog, ok := r.catalogs[source]
	if !ok {
		return Track{}, fmt.Errorf("%w: no %s credentials configured", ErrInvalidInput, source)
	}

	r.logger.Info("Resolving track",
		zap.String("platform", source.String()),
		zap.String("url", rawURL))

	catalogTrack, err := catalog.Resolve(ctx, rawURL)
	if err != nil {
		return Track{}, fmt.Errorf("%s lookup: %w", source, err)
	}

	video, err := r.matcher.Match(ctx, catalogTrack, fallback)
	if err != nil {
		return Track{}, err
	}

	track, err := NewTrack(catalogTrack, video)
	if err != nil {
		return Track{}, err
	}

	r.logger.Info("Track resolved",
		zap.String("track", track.String()),
		zap.String("videoURL", track.VideoURL()))

	return track, nil
}
