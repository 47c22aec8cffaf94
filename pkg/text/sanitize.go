// Package text provides URL extraction from dropped text and filename
// sanitation for track metadata that flows into filesystem paths.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// hostileReplacer swaps characters that are path separators or otherwise
// unusable in filenames on common filesystems.
var hostileReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "'",
	"<", "(",
	">", ")",
	"|", "_",
)

// SanitizeFilename makes a metadata string safe to use as a single path
// component. Ordinary titles pass through unchanged apart from Unicode
// NFC normalization, so the deterministic "<artist> - <title>" output
// patterns are preserved.
func SanitizeFilename(s string) string {
	s = norm.NFC.String(s)
	s = hostileReplacer.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}
