// Package catalog lists playable audio files in a folder.
package catalog

import (
	"os"
	"path/filepath"
	"strings"

	zlog "github.com/rs/zerolog/log"
)

// AudioExtensions are the playable extensions, lower case.
var AudioExtensions = []string{".mp3", ".wav", ".wma", ".ogg", ".aac"}

// IsAudioFile reports whether the file name ends in a playable extension (case-insensitive).
func IsAudioFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range AudioExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Scan returns the absolute paths of the audio files directly inside folder.
// A missing, unreadable or non-directory folder yields an empty list.
// No ordering is guaranteed.
func Scan(folder string) []string {
	return ScanFunc(folder, nil)
}

// ScanFunc is Scan restricted to file names accepted by keep (nil keeps all).
func ScanFunc(folder string, keep func(name string) bool) []string {
	files := make([]string, 0)
	if folder == "" {
		return files
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		zlog.Warn().Msgf("cannot resolve folder: folder=%s err=%v", folder, err)
		return files
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		zlog.Debug().Msgf("folder not readable: folder=%s err=%v", abs, err)
		return files
	}

	for _, e := range entries {
		if !isRegular(abs, e) || !IsAudioFile(e.Name()) {
			continue
		}
		if keep != nil && !keep(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(abs, e.Name()))
	}
	return files
}

// Count returns the number of audio files in folder.
func Count(folder string) int {
	return len(Scan(folder))
}

// isRegular follows symlinks so linked audio files are still listed.
func isRegular(dir string, e os.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}
