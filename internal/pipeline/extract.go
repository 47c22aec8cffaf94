package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/joelazwar/spotifyDragDrop/internal/core"
)

// Extractor produces an audio file from a video URL.
type Extractor interface {
	Extract(ctx context.Context, videoURL, outputPath string) error
}

// YTDLPExtractor shells out to the external yt-dlp tool for audio-only
// extraction. Output and error streams are captured for diagnostics and
// surfaced verbatim on failure.
type YTDLPExtractor struct {
	binary string
	logger *zap.Logger
}

// NewYTDLPExtractor creates an extractor using the given yt-dlp binary
// path ("yt-dlp" resolves through PATH).
func NewYTDLPExtractor(binary string, logger *zap.Logger) *YTDLPExtractor {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YTDLPExtractor{
		binary: binary,
		logger: logger,
	}
}

// Extract runs one yt-dlp invocation. A non-zero exit is an extraction
// failure; the step is never retried.
func (e *YTDLPExtractor) Extract(ctx context.Context, videoURL, outputPath string) error {
	args := []string{
		"-x",
		"--audio-format", "mp3",
		"-o", outputPath,
		videoURL,
	}

	cmd := exec.CommandContext(ctx, e.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("Running audio extraction",
		zap.String("binary", e.binary),
		zap.Strings("args", args))

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return fmt.Errorf("%w: %s", core.ErrExtraction, detail)
	}

	e.logger.Debug("Audio extraction finished",
		zap.String("output", outputPath),
		zap.Int("stdoutBytes", stdout.Len()))

	return nil
}
