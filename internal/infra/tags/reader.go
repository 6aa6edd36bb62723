// Package tags reads artist and title from embedded ID3v2 tags.
package tags

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	zlog "github.com/rs/zerolog/log"
)

// Reader reads ID3v2 tags of .mp3 files. Other formats are ignored.
type Reader struct{}

// NewReader creates a tag reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the lead artist (TPE1) and title (TIT2) of path.
// ok is false when the file is not an mp3, cannot be parsed, or carries neither frame.
func (r *Reader) Read(path string) (artist, title string, ok bool) {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return "", "", false
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Artist", "Title"}})
	if err != nil {
		zlog.Debug().Msgf("failed to read tags: file=%s err=%v", filepath.Base(path), err)
		return "", "", false
	}
	defer tag.Close()

	artist = strings.TrimSpace(tag.Artist())
	title = strings.TrimSpace(tag.Title())
	if artist == "" && title == "" {
		return "", "", false
	}
	return artist, title, true
}
