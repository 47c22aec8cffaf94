package core

import "errors"

// Sentinel errors for the resolution and download stages. Components wrap
// these with fmt.Errorf("...: %w", ...) so callers can classify failures
// with errors.Is while users only ever see the message chain.
var (
	// ErrInvalidInput marks malformed URLs or missing query parameters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAuth marks bad or expired platform credentials.
	ErrAuth = errors.New("authentication failed")
	// ErrNotFound marks a track or video that does not exist remotely.
	ErrNotFound = errors.New("not found")
	// ErrTransport marks network or HTTP-level failures.
	ErrTransport = errors.New("transport error")
	// ErrUnresolved marks a track with no accepted video and no usable fallback.
	ErrUnresolved = errors.New("no matching video found")
	// ErrIncompleteMetadata marks assembler precondition violations.
	ErrIncompleteMetadata = errors.New("incomplete track metadata")
	// ErrExtraction marks an audio extraction failure.
	ErrExtraction = errors.New("extraction error")
	// ErrTagWrite marks a tag write failure.
	ErrTagWrite = errors.New("tag write error")
)
