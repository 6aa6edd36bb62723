package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	return path
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"song.mp3", true},
		{"SONG.MP3", true},
		{"jingle.Wav", true},
		{"spot.wma", true},
		{"spot.ogg", true},
		{"spot.aac", true},
		{"cover.jpg", false},
		{"notes.txt", false},
		{"mp3", false},
		{"song.mp3.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAudioFile(tt.name))
		})
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "Artist - One.mp3")
	b := touch(t, dir, "two.OGG")
	touch(t, dir, "cover.jpg")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.mp3"), 0o755))

	files := Scan(dir)
	sort.Strings(files)

	assert.Equal(t, []string{a, b}, files)
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f))
	}
	assert.Equal(t, 2, Count(dir))
}

func TestScan_MissingOrInvalidFolder(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, dir, "song.mp3")

	assert.Empty(t, Scan(filepath.Join(dir, "does-not-exist")))
	assert.Empty(t, Scan(file), "a file is not a folder")
	assert.Empty(t, Scan(""))
	assert.NotNil(t, Scan(""))
}

func TestScanFunc(t *testing.T) {
	dir := t.TempDir()
	keep := touch(t, dir, "01 himno.mp3")
	touch(t, dir, "02 himno.mp3")

	files := ScanFunc(dir, func(name string) bool { return name[:2] == "01" })
	assert.Equal(t, []string{keep}, files)
}
