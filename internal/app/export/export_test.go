package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/osa030/daylist/internal/domain/insertion"
	"github.com/osa030/daylist/internal/domain/playlist"
	"github.com/osa030/daylist/internal/domain/schedule"
	"github.com/osa030/daylist/internal/domain/track"
)

var exportDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	dir      string
	playlist *playlist.Playlist
	tracks   []string
	anthem   string
	promo    string
}

func writeFile(t *testing.T, path string, size int) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

// newFixture builds one block of three tracks, a woven insertion point and
// an anthem opening and closing the day.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{dir: dir}
	f.tracks = []string{
		writeFile(t, filepath.Join(dir, "music", "Los Ángeles - Canción.mp3"), 1234),
		writeFile(t, filepath.Join(dir, "music", "Artist - Two.mp3"), 2048),
		writeFile(t, filepath.Join(dir, "music", "Artist - Three.mp3"), 77),
	}
	f.anthem = writeFile(t, filepath.Join(dir, "special", "01 Himno Nacional.mp3"), 500)
	f.promo = writeFile(t, filepath.Join(dir, "promos", "01 Promo.mp3"), 300)

	p := playlist.New("run-1", exportDate)
	b := schedule.NewBlock(schedule.BlockConfig{
		Start: schedule.MustTimeOfDay(7, 0, 0),
		End:   schedule.MustTimeOfDay(8, 0, 0),
		Genre: schedule.GenreBaladas,
	})
	for _, path := range f.tracks {
		b.Items = append(b.Items, schedule.TrackItem(track.FromPath(path, "Baladas")))
	}
	b.Items = append(b.Items,
		schedule.TrackItem(track.NewTimeMarker()),
		schedule.InsertionItem(insertion.FromPath(f.promo, insertion.CategoryPromoA)),
	)
	p.AddBlock(b)
	p.Opening = []insertion.Insertion{insertion.FromPath(f.anthem, insertion.CategoryNationalAnthem)}
	p.Closing = []insertion.Insertion{insertion.FromPath(f.anthem, insertion.CategoryNationalAnthem)}
	f.playlist = p
	return f
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		format Format
		want   string
	}{
		{name: "append date", base: "/out/lista", format: FormatLST, want: "/out/lista_2024-06-01.lst"},
		{name: "keep extension", base: "/out/lista.lst", format: FormatLST, want: "/out/lista.lst"},
		{name: "keep upper-case extension", base: "/out/LISTA.M3U", format: FormatM3U, want: "/out/LISTA.M3U"},
		{name: "other extension", base: "/out/lista.lst", format: FormatM3U, want: "/out/lista.lst_2024-06-01.m3u"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.base, exportDate, tt.format))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" M3U ")
	require.NoError(t, err)
	assert.Equal(t, FormatM3U, f)

	_, err = ParseFormat("pls")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = DetectFormat("/tmp/list.pls")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestWriteLST(t *testing.T) {
	f := newFixture(t)
	base := filepath.Join(f.dir, "out", "lista")
	require.NoError(t, os.MkdirAll(filepath.Dir(base), 0o755))

	res, err := WriteLST(f.playlist, base)
	require.NoError(t, err)
	assert.Equal(t, base+"_2024-06-01.lst", res.Path)
	assert.Equal(t, res.Path, f.playlist.LSTPath)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 7, res.Entries)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF#ZaraRadio List File\n"), "UTF-8 BOM then marker")
	assert.Equal(t, int64(len(data)), res.Bytes)

	want := strings.Join([]string{
		"#ZaraRadio List File",
		"#Generated by Generador de Listas",
		"#Date: 2024-06-01",
		"#Start: 07:00:00",
		"#End: 08:05:00",
		"",
		"#Himno Nacional: 01 Himno Nacional",
		"500 " + f.anthem,
		"#Bloque: 07:00:00 - 08:00:00 (Baladas)",
		"1234 " + f.tracks[0],
		"2048 " + f.tracks[1],
		"77 " + f.tracks[2],
		"-1 .time",
		"300 " + f.promo,
		"",
		"#Himno Nacional: 01 Himno Nacional",
		"500 " + f.anthem,
		"",
	}, "\n")
	assert.Equal(t, want, strings.TrimPrefix(string(data), bom))
}

func TestWriteLST_MissingFiles(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.tracks[1]))
	require.NoError(t, os.Remove(f.promo))

	res, err := WriteLST(f.playlist, filepath.Join(f.dir, "lista.lst"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "lista.lst"), res.Path)
	assert.Len(t, res.Warnings, 2)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), f.tracks[1], "missing tracks are skipped")
	assert.Contains(t, string(data), "\n0 "+f.promo+"\n", "missing insertions keep a zero size")
}

func TestWriteLST_FailureLeavesNoFile(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(f.dir, "missing-dir", "lista.lst")

	_, err := WriteLST(f.playlist, target)
	require.Error(t, err)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, f.playlist.LSTPath)
}

func TestWriteM3U(t *testing.T) {
	f := newFixture(t)

	res, err := WriteM3U(f.playlist, filepath.Join(f.dir, "lista"), nil)
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", res.Encoding)
	assert.Equal(t, res.Path, f.playlist.M3UPath)
	assert.Empty(t, res.Warnings)

	raw, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	require.NoError(t, err)

	want := strings.Join([]string{
		"#EXTM3U",
		f.anthem,
		f.tracks[0],
		f.tracks[1],
		f.tracks[2],
		"#EXTINF:-1,Locución de Hora",
		".time",
		f.promo,
		f.anthem,
		"",
	}, "\n")
	assert.Equal(t, want, string(decoded))
	assert.NotContains(t, string(raw), "Á", "not UTF-8 on disk")
}

func TestWriteM3U_EncodingFallback(t *testing.T) {
	f := newFixture(t)
	euro := writeFile(t, filepath.Join(f.dir, "music", "Œuvre - Š.mp3"), 10)
	f.playlist.Blocks[0].Items = append(f.playlist.Blocks[0].Items, schedule.TrackItem(track.FromPath(euro, "Baladas")))

	res, err := WriteM3U(f.playlist, filepath.Join(f.dir, "lista"), []string{"iso-8859-1", "iso-8859-15"})
	require.NoError(t, err)
	assert.Equal(t, "iso-8859-15", res.Encoding)
	assert.Len(t, res.Warnings, 1)
}

func TestWriteM3U_EncodingExhausted(t *testing.T) {
	f := newFixture(t)
	kanji := writeFile(t, filepath.Join(f.dir, "music", "曲.mp3"), 10)
	f.playlist.Blocks[0].Items = append(f.playlist.Blocks[0].Items, schedule.TrackItem(track.FromPath(kanji, "Baladas")))
	target := filepath.Join(f.dir, "lista.m3u")

	_, err := WriteM3U(f.playlist, target, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEncodingExhausted))
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr), "no partial file")
}

func TestWriteM3U_MissingFilesSkipped(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.tracks[0]))
	require.NoError(t, os.Remove(f.promo))

	res, err := WriteM3U(f.playlist, filepath.Join(f.dir, "lista"), nil)
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 2)
	assert.Equal(t, 5, res.Entries)
}

func TestReadBack_LST(t *testing.T) {
	f := newFixture(t)
	res, err := WriteLST(f.playlist, filepath.Join(f.dir, "lista"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(f.tracks[2]))

	doc, err := Read(res.Path, nil)
	require.NoError(t, err)
	assert.Equal(t, FormatLST, doc.Format)
	assert.Equal(t, "2024-06-01", doc.Header["Date"])
	assert.Equal(t, "07:00:00", doc.Header["Start"])
	assert.Equal(t, "08:05:00", doc.Header["End"])
	assert.Equal(t, 1, doc.Blocks)
	require.Len(t, doc.Entries, 7)

	assert.Equal(t, "Himno Nacional: 01 Himno Nacional", doc.Entries[0].Comment)
	assert.Equal(t, int64(500), doc.Entries[0].Size)
	assert.Equal(t, f.tracks[0], doc.Entries[1].Path)
	assert.Equal(t, int64(1234), doc.Entries[1].Size)
	assert.Empty(t, doc.Entries[1].Comment)
	assert.True(t, doc.Entries[4].TimeMarker)
	assert.Equal(t, int64(-1), doc.Entries[4].Size)
	assert.Equal(t, 1, doc.TimeMarkers())
	assert.Equal(t, []string{f.tracks[2]}, doc.Missing())
}

func TestReadBack_M3U(t *testing.T) {
	f := newFixture(t)
	res, err := WriteM3U(f.playlist, filepath.Join(f.dir, "lista"), nil)
	require.NoError(t, err)

	doc, err := Read(res.Path, nil)
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", doc.Encoding, "UTF-8 rejected for the legacy bytes")
	require.Len(t, doc.Entries, 7)
	assert.Equal(t, f.tracks[0], doc.Entries[1].Path, "accented path decoded")
	assert.True(t, doc.Entries[4].TimeMarker)
	assert.Equal(t, TimeMarkerLabel, doc.Entries[4].Comment)
	assert.Empty(t, doc.Missing())
}

func TestReadM3U_EncodingDetection(t *testing.T) {
	dir := t.TempDir()
	content := "#EXTM3U\n/música/Canción de Año.mp3\n"

	tests := []struct {
		name    string
		data    func() []byte
		want    string
		wantErr bool
	}{
		{
			name: "utf-8",
			data: func() []byte { return []byte(content) },
			want: "utf-8",
		},
		{
			name: "windows-1252",
			data: func() []byte {
				b, _ := charmap.Windows1252.NewEncoder().Bytes([]byte(content))
				return b
			},
			want: "windows-1252",
		},
		{
			name:    "question marks everywhere",
			data:    func() []byte { return []byte("#EXTM3U\n/m/Canci??n.mp3\n") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".m3u")
			require.NoError(t, os.WriteFile(path, tt.data(), 0o644))

			doc, err := ReadM3U(path, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrEncodingExhausted))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Encoding)
			require.Len(t, doc.Entries, 1)
			assert.Equal(t, "/música/Canción de Año.mp3", doc.Entries[0].Path)
		})
	}
}

func TestSuspicious(t *testing.T) {
	assert.Empty(t, suspicious("#EXTM3U\n/m/Canción.mp3"))
	assert.Equal(t, "double-encoded characters", suspicious("/m/CanciÃ³n.mp3"))
	assert.Equal(t, "replacement characters", suspicious("/m/Canci\ufffdn.mp3"))
	assert.Equal(t, "extended latin run", suspicious("/m/ÐÑÒ.mp3"))
	assert.Empty(t, suspicious("#comment ??\n/m/ok.mp3"), "comments are not checked")
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range append(DefaultWriteEncodings, DefaultReadEncodings...) {
		_, err := LookupEncoding(name)
		assert.NoError(t, err, name)
	}
	_, err := LookupEncoding("IBM437")
	assert.NoError(t, err, "resolved through the IANA index")
	assert.Error(t, ValidateEncodings([]string{"utf-8", "klingon"}))
}
