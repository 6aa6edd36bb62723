// Package track provides the Track domain entity.
package track

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	// UnknownArtist is used when the artist cannot be derived from the file name.
	UnknownArtist = "Unknown"

	// TimeMarkerPath is the reserved path of an hourly time announcement point.
	TimeMarkerPath = ".time"

	// DefaultDuration is the estimated duration of a music track.
	DefaultDuration = 3*time.Minute + 30*time.Second

	// TimeMarkerDuration is the estimated duration of a time-marker.
	TimeMarkerDuration = time.Second
)

// Track represents an audio file scheduled inside a block.
// Durations are estimates; audio is never decoded.
type Track struct {
	Title    string        // Track title
	Artist   string        // Artist name (UnknownArtist if not derivable)
	Path     string        // Absolute file path (TimeMarkerPath for time-markers)
	Duration time.Duration // Estimated duration
	Genre    string        // Genre tag of the owning block
}

// FromPath builds a Track from an audio file path.
// The base name (without extension) is parsed as "Artist - Title".
func FromPath(path, genre string) Track {
	artist, title := ParseFileName(filepath.Base(path))
	return Track{
		Title:    title,
		Artist:   artist,
		Path:     path,
		Duration: DefaultDuration,
		Genre:    genre,
	}
}

// NewTimeMarker returns the reserved time announcement track.
func NewTimeMarker() Track {
	return Track{
		Title:    "TIME_MARKER",
		Artist:   "TIME_MARKER",
		Path:     TimeMarkerPath,
		Duration: TimeMarkerDuration,
	}
}

// IsTimeMarker reports whether the track is a time announcement point.
func (t *Track) IsTimeMarker() bool {
	return t.Path == TimeMarkerPath
}

// HasKnownArtist reports whether the artist was derived from the file name or tags.
// Time-markers never have one.
func (t *Track) HasKnownArtist() bool {
	if t.IsTimeMarker() {
		return false
	}
	return t.Artist != "" && t.Artist != UnknownArtist
}

// ParseFileName splits a file name into artist and title.
// Only the first " - " separates the two; without it the artist is UnknownArtist.
func ParseFileName(name string) (artist, title string) {
	base := StripExtension(name)
	if before, after, found := strings.Cut(base, " - "); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return UnknownArtist, base
}

// StripExtension removes the last extension from a file name.
func StripExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
