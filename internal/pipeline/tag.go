package pipeline

import (
	"fmt"
	"os"

	"github.com/bogem/id3v2"

	"github.com/joelazwar/spotifyDragDrop/internal/core"
)

// id3Version is the ID3v2 sub-version written to output files. v2.3 is
// the older of the two supported sub-versions and has the widest player
// compatibility.
const id3Version = 3

// Tagger writes track metadata into a produced audio file.
type Tagger interface {
	Write(track core.Track, audioPath, artworkPath string) error
}

// ID3Tagger writes ID3v2 tags with an optional embedded front cover.
type ID3Tagger struct{}

// NewID3Tagger creates a tagger.
func NewID3Tagger() *ID3Tagger {
	return &ID3Tagger{}
}

// Write opens the audio file, sets title, performer and album, embeds the
// artwork file as a single front-cover JPEG picture when it exists, forces
// the tag version and saves. The audio file is left on disk even when this
// fails; partial success stays visible.
func (t *ID3Tagger) Write(track core.Track, audioPath, artworkPath string) error {
	tag, err := id3v2.Open(audioPath, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", core.ErrTagWrite, audioPath, err)
	}
	defer func() {
		_ = tag.Close()
	}()

	tag.SetVersion(id3Version)
	tag.SetTitle(track.Title())
	tag.SetArtist(track.Artist())
	tag.SetAlbum(track.Album())

	if artworkPath != "" {
		if artBytes, readErr := os.ReadFile(artworkPath); readErr == nil {
			tag.AddAttachedPicture(id3v2.PictureFrame{
				Encoding:    id3v2.EncodingUTF8,
				MimeType:    "image/jpeg",
				PictureType: id3v2.PTFrontCover,
				Description: "Album cover",
				Picture:     artBytes,
			})
		}
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("%w: save %s: %v", core.ErrTagWrite, audioPath, err)
	}

	return nil
}
