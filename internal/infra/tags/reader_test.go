package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTagged(t *testing.T, name, artist, title string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetArtist(artist)
	tag.SetTitle(title)
	require.NoError(t, tag.Save())
	require.NoError(t, tag.Close())
	return path
}

func TestReader_Read(t *testing.T) {
	r := NewReader()

	path := writeTagged(t, "track01.mp3", "Los Ángeles Azules", "Mis Sentimientos")
	artist, title, ok := r.Read(path)
	require.True(t, ok)
	assert.Equal(t, "Los Ángeles Azules", artist)
	assert.Equal(t, "Mis Sentimientos", title)
}

func TestReader_NoTags(t *testing.T) {
	r := NewReader()
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.mp3")
	require.NoError(t, os.WriteFile(plain, []byte("no tag here"), 0o644))
	_, _, ok := r.Read(plain)
	assert.False(t, ok)

	_, _, ok = r.Read(filepath.Join(dir, "missing.mp3"))
	assert.False(t, ok)

	wav := filepath.Join(dir, "song.wav")
	require.NoError(t, os.WriteFile(wav, []byte("RIFF"), 0o644))
	_, _, ok = r.Read(wav)
	assert.False(t, ok, "only mp3 files are read")
}
