// Package export writes playlists to LST and M3U files and reads them back.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

var (
	// ErrEncodingExhausted is returned when no candidate encoding can represent or decode the content.
	ErrEncodingExhausted = errors.New("no candidate encoding could be used")
	// ErrUnsupportedFormat is returned for unknown format names or file extensions.
	ErrUnsupportedFormat = errors.New("unsupported playlist format")
)

// Format represents a playlist file format.
type Format string

const (
	FormatLST Format = "lst"
	FormatM3U Format = "m3u"
)

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lst":
		return FormatLST, nil
	case "m3u":
		return FormatM3U, nil
	default:
		return "", errors.Mark(errors.Newf("unknown format %q", s), ErrUnsupportedFormat)
	}
}

// DetectFormat returns the format of a file from its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lst":
		return FormatLST, nil
	case ".m3u":
		return FormatM3U, nil
	default:
		return "", errors.Mark(errors.Newf("unknown playlist extension for %s", path), ErrUnsupportedFormat)
	}
}

// OutputPath returns base unchanged when it already ends with the format
// extension (case-insensitive), otherwise base + "_yyyy-MM-dd" + extension.
func OutputPath(base string, date time.Time, f Format) string {
	if strings.EqualFold(filepath.Ext(base), f.Ext()) {
		return base
	}
	return fmt.Sprintf("%s_%s%s", base, date.Format("2006-01-02"), f.Ext())
}

// Result describes a finished export.
type Result struct {
	Path     string
	Format   Format
	Encoding string
	Bytes    int64
	Entries  int
	Warnings []string
}

func (r *Result) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	zlog.Warn().Str("format", string(r.Format)).Msg(msg)
	r.Warnings = append(r.Warnings, msg)
}

// writeAtomic writes data to a temp file next to path and renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrapf(err, "failed to sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrapf(err, "failed to close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return errors.Wrapf(err, "failed to chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrapf(err, "failed to move %s into place", path)
	}
	return nil
}

// fileSize returns the size of path, or false when it does not exist.
func fileSize(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0, false
	}
	return info.Size(), true
}
