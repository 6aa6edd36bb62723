package export

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/daylist/internal/domain/track"
)

// Entry is one playable line of a read-back playlist.
type Entry struct {
	Path       string
	Size       int64  // Size prefix from LST files; -1 for time-markers and M3U entries
	Comment    string // Preceding comment or EXTINF title, if any
	TimeMarker bool
	Exists     bool
}

// Document is a best-effort parse of a playlist file.
type Document struct {
	Path     string
	Format   Format
	Encoding string
	Header   map[string]string // "Date", "Start", "End" for LST files
	Blocks   int
	Entries  []Entry
}

// Missing returns the paths of entries whose files do not exist.
func (d *Document) Missing() []string {
	out := make([]string, 0)
	for _, e := range d.Entries {
		if !e.TimeMarker && !e.Exists {
			out = append(out, e.Path)
		}
	}
	return out
}

// TimeMarkers returns the number of time-marker entries.
func (d *Document) TimeMarkers() int {
	n := 0
	for _, e := range d.Entries {
		if e.TimeMarker {
			n++
		}
	}
	return n
}

// Read parses an LST or M3U file chosen by extension. encodings applies to M3U only.
func Read(path string, encodings []string) (*Document, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if f == FormatLST {
		return ReadLST(path)
	}
	return ReadM3U(path, encodings)
}

// ReadLST parses a UTF-8 LST file.
func ReadLST(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	text, enc, err := decodeFirst(data, []string{"utf-8"})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	doc := &Document{Path: path, Format: FormatLST, Encoding: enc, Header: make(map[string]string)}
	comment := ""
	for _, line := range splitLines(text) {
		switch {
		case line == "":
			comment = ""
		case strings.HasPrefix(line, "#Bloque:"):
			doc.Blocks++
			comment = ""
		case strings.HasPrefix(line, "#"):
			body := strings.TrimPrefix(line, "#")
			if key, value, ok := strings.Cut(body, ": "); ok {
				switch key {
				case "Date", "Start", "End":
					doc.Header[key] = value
					continue
				}
			}
			comment = body
		default:
			doc.Entries = append(doc.Entries, parseLSTEntry(line, comment))
			comment = ""
		}
	}

	zlog.Debug().Msgf("LST read: path=%s entries=%d blocks=%d", path, len(doc.Entries), doc.Blocks)
	return doc, nil
}

func parseLSTEntry(line, comment string) Entry {
	e := Entry{Path: line, Size: -1, Comment: comment}
	if sizeStr, rest, ok := strings.Cut(line, " "); ok {
		if size, err := strconv.ParseInt(sizeStr, 10, 64); err == nil {
			e.Path = strings.TrimSpace(rest)
			e.Size = size
		}
	}
	if e.Path == track.TimeMarkerPath {
		e.TimeMarker = true
		return e
	}
	_, e.Exists = fileSize(e.Path)
	return e
}

// ReadM3U parses an M3U file, trying encodings in order until one decodes cleanly.
func ReadM3U(path string, encodings []string) (*Document, error) {
	if len(encodings) == 0 {
		encodings = DefaultReadEncodings
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	text, enc, err := decodeFirst(data, encodings)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	doc := &Document{Path: path, Format: FormatM3U, Encoding: enc, Header: make(map[string]string)}
	title := ""
	for _, line := range splitLines(text) {
		switch {
		case line == "" || line == m3uHeader:
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			if _, t, ok := strings.Cut(line, ","); ok {
				title = t
			}
		case strings.HasPrefix(line, "#"):
			continue
		default:
			e := Entry{Path: line, Size: -1, Comment: title}
			if line == track.TimeMarkerPath {
				e.TimeMarker = true
			} else {
				_, e.Exists = fileSize(line)
			}
			doc.Entries = append(doc.Entries, e)
			title = ""
		}
	}

	zlog.Debug().Msgf("M3U read: path=%s encoding=%s entries=%d", path, enc, len(doc.Entries))
	return doc, nil
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
