package export

import (
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/daylist/internal/domain/insertion"
	"github.com/osa030/daylist/internal/domain/playlist"
	"github.com/osa030/daylist/internal/domain/schedule"
	"github.com/osa030/daylist/internal/domain/track"
)

const m3uHeader = "#EXTM3U"

// TimeMarkerLabel is the EXTINF title of a time-marker.
var TimeMarkerLabel = insertion.TypeTimeAnnouncement.Name()

// WriteM3U writes the playlist in the first single-byte encoding of
// encodings that can represent every path. The target is replaced
// atomically; p.M3UPath is set on success.
func WriteM3U(p *playlist.Playlist, base string, encodings []string) (*Result, error) {
	if len(encodings) == 0 {
		encodings = DefaultWriteEncodings
	}
	res := &Result{
		Path:   OutputPath(base, p.Date, FormatM3U),
		Format: FormatM3U,
	}

	text := renderM3U(p, res)
	data, used, err := encodeFirst(text, encodings)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode M3U playlist")
	}
	if used != encodings[0] {
		res.warnf("M3U written with fallback encoding %s", used)
	}
	res.Encoding = used

	if err := writeAtomic(res.Path, data); err != nil {
		return nil, errors.Wrap(err, "failed to save M3U playlist")
	}
	res.Bytes = int64(len(data))
	p.M3UPath = res.Path

	zlog.Info().Str("run_id", p.ID).Msgf("M3U playlist saved: path=%s encoding=%s entries=%d warnings=%d", res.Path, used, res.Entries, len(res.Warnings))
	return res, nil
}

func renderM3U(p *playlist.Playlist, res *Result) string {
	var sb strings.Builder
	sb.WriteString(m3uHeader + "\n")

	for _, ins := range p.Opening {
		writePath(&sb, ins.Path, true, res)
	}
	for _, b := range p.Blocks {
		for _, it := range b.Items {
			switch {
			case it.IsTimeMarker():
				sb.WriteString("#EXTINF:-1," + TimeMarkerLabel + "\n")
				sb.WriteString(track.TimeMarkerPath + "\n")
				res.Entries++
			case it.Kind == schedule.ItemInsertion:
				writePath(&sb, it.Insertion.Path, true, res)
			default:
				writePath(&sb, it.Track.Path, false, res)
			}
		}
	}
	for _, ins := range p.Closing {
		writePath(&sb, ins.Path, true, res)
	}
	return sb.String()
}

func writePath(sb *strings.Builder, path string, isInsertion bool, res *Result) {
	if _, ok := fileSize(path); !ok {
		if isInsertion {
			res.warnf("insertion not found, skipped: %s", path)
		} else {
			res.warnf("track not found, skipped: %s", path)
		}
		return
	}
	sb.WriteString(path + "\n")
	res.Entries++
}
