package export

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/daylist/internal/domain/insertion"
	"github.com/osa030/daylist/internal/domain/playlist"
	"github.com/osa030/daylist/internal/domain/schedule"
)

const (
	lstMarker    = "#ZaraRadio List File"
	lstGenerator = "#Generated by Generador de Listas"
	lstTimeLine  = "-1 .time"
)

// WriteLST writes the playlist as a UTF-8 LST file with byte-order mark.
// The target is replaced atomically; p.LSTPath is set on success.
func WriteLST(p *playlist.Playlist, base string) (*Result, error) {
	res := &Result{
		Path:     OutputPath(base, p.Date, FormatLST),
		Format:   FormatLST,
		Encoding: "utf-8",
	}

	data := renderLST(p, res)
	if err := writeAtomic(res.Path, data); err != nil {
		return nil, errors.Wrap(err, "failed to save LST playlist")
	}
	res.Bytes = int64(len(data))
	p.LSTPath = res.Path

	zlog.Info().Str("run_id", p.ID).Msgf("LST playlist saved: path=%s entries=%d warnings=%d", res.Path, res.Entries, len(res.Warnings))
	return res, nil
}

func renderLST(p *playlist.Playlist, res *Result) []byte {
	var buf bytes.Buffer
	buf.WriteString(bom)
	buf.WriteString(lstMarker + "\n")
	buf.WriteString(lstGenerator + "\n")
	fmt.Fprintf(&buf, "#Date: %s\n", p.DateLabel())
	fmt.Fprintf(&buf, "#Start: %s\n", p.Start)
	fmt.Fprintf(&buf, "#End: %s\n\n", p.End)

	writeCeremony(&buf, p.Opening, res)
	for _, b := range p.Blocks {
		writeBlock(&buf, b, res)
	}
	writeCeremony(&buf, p.Closing, res)

	return buf.Bytes()
}

func writeCeremony(buf *bytes.Buffer, items []insertion.Insertion, res *Result) {
	for _, ins := range items {
		fmt.Fprintf(buf, "#%s\n", ins.Label())
		writeSized(buf, ins.Path, res)
	}
}

func writeBlock(buf *bytes.Buffer, b *schedule.Block, res *Result) {
	fmt.Fprintf(buf, "#Bloque: %s (%s)\n", b.RangeLabel(), b.Genre)
	for _, it := range b.Items {
		switch {
		case it.IsTimeMarker():
			buf.WriteString(lstTimeLine + "\n")
			res.Entries++
		case it.Kind == schedule.ItemInsertion:
			writeSized(buf, it.Insertion.Path, res)
		default:
			size, ok := fileSize(it.Track.Path)
			if !ok {
				res.warnf("track not found, skipped: %s", it.Track.Path)
				continue
			}
			fmt.Fprintf(buf, "%d %s\n", size, it.Track.Path)
			res.Entries++
		}
	}
	buf.WriteString("\n")
}

// writeSized writes an insertion line; a missing file is kept with size 0.
func writeSized(buf *bytes.Buffer, path string, res *Result) {
	size, ok := fileSize(path)
	if !ok {
		res.warnf("insertion not found, written with size 0: %s", filepath.Base(path))
	}
	fmt.Fprintf(buf, "%d %s\n", size, path)
	res.Entries++
}
